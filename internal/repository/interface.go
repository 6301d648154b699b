package repository

import (
	"context"
	"time"
)

// Filters is the shared filter vocabulary applied by every type store.
// Each store interprets only the filters that make sense for its records;
// the rest are ignored (e.g. Level for communities).
type Filters struct {
	// Query is a free-text term matched case-insensitively as a substring
	// against the store's text fields. Empty means no text filter.
	Query string

	// Level matches case-insensitively as a substring against skill-level
	// associations, for stores that have them (users, jobs).
	Level string

	// TalentID restricts matches to records associated with the given
	// talent category id.
	TalentID *int
}

// Sort tells a store how to order its candidate window. Values are the
// already-validated sortBy/sortOrder enums; stores map them onto their own
// columns so that every window is a prefix of the global sort order.
type Sort struct {
	By    string
	Order string
}

// UserRow is an account candidate shaped for projection.
type UserRow struct {
	ID                int    `gorm:"column:user_id"`
	Username          string
	Bio               string
	ProfilePictureURL string `gorm:"column:profile_picture_url"`
	CreatedAt         time.Time
	Email             string
	IsActive          bool
}

// CommunityRow is a community candidate shaped for projection.
type CommunityRow struct {
	ID          int `gorm:"column:community_id"`
	Name        string
	Description string
	CreatedAt   time.Time
	CreatorID   int
	CreatorName string
	MemberCount int
}

// JobRow is a job-posting candidate shaped for projection.
type JobRow struct {
	ID             int `gorm:"column:job_id"`
	JobTitle       string
	JobDescription string
	CompanyName    string
	Location       string
	Salary         string
	CreatedAt      time.Time
	EmployerName   string
}

// TalentRow is a talent-category candidate shaped for projection.
type TalentRow struct {
	ID          int `gorm:"column:category_id"`
	Name        string
	Description string
	CreatedAt   time.Time
	UserCount   int
}

// PostRow is a content-post candidate shaped for projection.
type PostRow struct {
	ID           int `gorm:"column:post_id"`
	Description  string
	VideoURL     string `gorm:"column:video_url"`
	UploadedAt   time.Time
	IsPublic     bool
	AuthorName   string
	CategoryName string
	LikeCount    int
	CommentCount int
}

// UserStore queries the account collection.
type UserStore interface {
	Search(ctx context.Context, f Filters, sort Sort, window int) ([]UserRow, error)
	Count(ctx context.Context, f Filters) (int, error)
}

// CommunityStore queries the community collection. MembershipsFor returns
// the caller's membership role keyed by community id, for decorating
// community results; communities the caller has not joined are absent.
type CommunityStore interface {
	Search(ctx context.Context, f Filters, sort Sort, window int) ([]CommunityRow, error)
	Count(ctx context.Context, f Filters) (int, error)
	MembershipsFor(ctx context.Context, communityIDs []int, userID int) (map[int]string, error)
}

// JobStore queries the job-posting collection. DistinctLevels enumerates
// the level values currently attached to any job posting.
type JobStore interface {
	Search(ctx context.Context, f Filters, sort Sort, window int) ([]JobRow, error)
	Count(ctx context.Context, f Filters) (int, error)
	DistinctLevels(ctx context.Context) ([]string, error)
}

// TalentStore queries the talent-category collection.
type TalentStore interface {
	Search(ctx context.Context, f Filters, sort Sort, window int) ([]TalentRow, error)
	Count(ctx context.Context, f Filters) (int, error)
}

// PostStore queries the content-post collection.
type PostStore interface {
	Search(ctx context.Context, f Filters, sort Sort, window int) ([]PostRow, error)
	Count(ctx context.Context, f Filters) (int, error)
}

// Stores bundles the five type stores consumed by the search service.
type Stores struct {
	Users       UserStore
	Communities CommunityStore
	Jobs        JobStore
	Talents     TalentStore
	Posts       PostStore
}
