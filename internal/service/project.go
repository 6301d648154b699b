package service

import (
	"github.com/talentshowcase/search-service/internal/domain"
	"github.com/talentshowcase/search-service/internal/repository"
)

// Every match currently carries a constant relevance score; it is an
// extension point for real ranking, not a computed value.
const constantRelevance = 1.0

func projectUser(r repository.UserRow) domain.SearchResult {
	return domain.SearchResult{
		Type:           domain.TypeUser,
		ID:             r.ID,
		Title:          r.Username,
		Description:    r.Bio,
		ImageURL:       r.ProfilePictureURL,
		CreatedAt:      r.CreatedAt,
		RelevanceScore: constantRelevance,
		AdditionalData: map[string]interface{}{
			"email":    r.Email,
			"isActive": r.IsActive,
		},
	}
}

// projectCommunity decorates the result with the caller's membership state
// when the caller is known; anonymous searches omit the membership flags.
func projectCommunity(r repository.CommunityRow, callerID *int, roles map[int]string) domain.SearchResult {
	additional := map[string]interface{}{
		"creatorName": r.CreatorName,
		"memberCount": r.MemberCount,
	}

	if callerID != nil {
		role, isMember := roles[r.ID]
		additional["isMember"] = isMember
		additional["isCreator"] = r.CreatorID == *callerID
		additional["memberRole"] = role
	}

	return domain.SearchResult{
		Type:           domain.TypeCommunity,
		ID:             r.ID,
		Title:          r.Name,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
		RelevanceScore: constantRelevance,
		AdditionalData: additional,
	}
}

func projectJob(r repository.JobRow) domain.SearchResult {
	return domain.SearchResult{
		Type:           domain.TypeJob,
		ID:             r.ID,
		Title:          r.JobTitle,
		Description:    r.JobDescription,
		CreatedAt:      r.CreatedAt,
		RelevanceScore: constantRelevance,
		AdditionalData: map[string]interface{}{
			"employerName": r.EmployerName,
			"companyName":  r.CompanyName,
			"location":     r.Location,
			"salary":       r.Salary,
		},
	}
}

func projectTalent(r repository.TalentRow) domain.SearchResult {
	return domain.SearchResult{
		Type:           domain.TypeTalent,
		ID:             r.ID,
		Title:          r.Name,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
		RelevanceScore: constantRelevance,
		AdditionalData: map[string]interface{}{
			"userCount": r.UserCount,
		},
	}
}

func projectPost(r repository.PostRow) domain.SearchResult {
	return domain.SearchResult{
		Type:           domain.TypePost,
		ID:             r.ID,
		Title:          "Post by " + r.AuthorName,
		Description:    r.Description,
		ImageURL:       r.VideoURL,
		CreatedAt:      r.UploadedAt,
		RelevanceScore: constantRelevance,
		AdditionalData: map[string]interface{}{
			"authorName":   r.AuthorName,
			"categoryName": r.CategoryName,
			"likeCount":    r.LikeCount,
			"commentCount": r.CommentCount,
			"isPublic":     r.IsPublic,
		},
	}
}
