package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentshowcase/search-service/internal/domain"
)

type gormCommunityStore struct {
	db *gorm.DB
}

func (s *gormCommunityStore) base(ctx context.Context, f Filters) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.Community{})

	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where("LOWER(communities.name) LIKE ? OR LOWER(communities.description) LIKE ?", p, p)
	}

	// Communities have no level or talent-category association; those
	// filters do not apply here.
	return q
}

func (s *gormCommunityStore) Search(ctx context.Context, f Filters, sort Sort, window int) ([]CommunityRow, error) {
	var rows []CommunityRow
	err := s.base(ctx, f).
		Select(`communities.community_id, communities.name, communities.description,
			communities.created_at, communities.creator_id,
			users.username AS creator_name,
			(SELECT COUNT(*) FROM community_members cm WHERE cm.community_id = communities.community_id) AS member_count`).
		Joins("JOIN users ON users.user_id = communities.creator_id").
		Order(orderClause(sort, s.db.Dialector.Name(), "communities.created_at", "communities.name", "communities.community_id")).
		Limit(window).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormCommunityStore) Count(ctx context.Context, f Filters) (int, error) {
	var n int64
	if err := s.base(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *gormCommunityStore) MembershipsFor(ctx context.Context, communityIDs []int, userID int) (map[int]string, error) {
	if len(communityIDs) == 0 {
		return map[int]string{}, nil
	}

	var members []domain.CommunityMember
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND community_id IN ?", userID, communityIDs).
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	roles := make(map[int]string, len(members))
	for _, m := range members {
		roles[m.CommunityID] = m.Role
	}
	return roles, nil
}
