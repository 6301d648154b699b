package domain

import "time"

// User is the GORM model for platform accounts.
type User struct {
	UserID            int       `gorm:"primaryKey;autoIncrement"`
	Username          string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Bio               string    `gorm:"type:text"`
	ContactInfo       string    `gorm:"type:varchar(255)"`
	ProfilePictureURL string    `gorm:"type:varchar(255)"`
	RoleID            int       `gorm:"not null;default:2"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	LastLoginAt       *time.Time
	IsActive          bool `gorm:"default:true"`

	Talents []UserTalentCategory `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

// UserTalentCategory links a user to a talent category with a skill level.
type UserTalentCategory struct {
	UserID           int    `gorm:"primaryKey"`
	TalentCategoryID int    `gorm:"primaryKey"`
	Level            string `gorm:"type:varchar(50);not null"`
}

func (UserTalentCategory) TableName() string { return "user_talent_categories" }

// Community is the GORM model for communities.
type Community struct {
	CommunityID int       `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	CreatorID   int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Creator *User             `gorm:"foreignKey:CreatorID"`
	Members []CommunityMember `gorm:"foreignKey:CommunityID"`
}

func (Community) TableName() string { return "communities" }

// CommunityMember links a user to a community with a membership role.
type CommunityMember struct {
	CommunityID int       `gorm:"primaryKey"`
	UserID      int       `gorm:"primaryKey"`
	JoinedAt    time.Time `gorm:"autoCreateTime"`
	Role        string    `gorm:"type:varchar(20);default:member"`
}

func (CommunityMember) TableName() string { return "community_members" }

// Job is the GORM model for job postings. Unlike the legacy schema, jobs
// carry a real creation timestamp so date sorting is stable.
type Job struct {
	JobID          int    `gorm:"primaryKey;autoIncrement"`
	JobTitle       string `gorm:"type:varchar(100);not null"`
	CompanyName    string `gorm:"type:varchar(100)"`
	Location       string `gorm:"type:varchar(100)"`
	Salary         string `gorm:"type:varchar(50)"`
	JobDescription string `gorm:"type:text"`
	Requirements   string `gorm:"type:text"`
	ExpireAt       *time.Time
	UserID         int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`

	User       *User               `gorm:"foreignKey:UserID"`
	Categories []JobTalentCategory `gorm:"foreignKey:JobID"`
}

func (Job) TableName() string { return "jobs" }

// JobTalentCategory links a job to a talent category with a required level.
type JobTalentCategory struct {
	JobID            int    `gorm:"primaryKey"`
	TalentCategoryID int    `gorm:"primaryKey"`
	Level            string `gorm:"type:varchar(50);not null"`
}

func (JobTalentCategory) TableName() string { return "job_talent_categories" }

// TalentCategory is the GORM model for skill/talent categories. It carries
// a creation timestamp for the same reason jobs do.
type TalentCategory struct {
	CategoryID  int       `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (TalentCategory) TableName() string { return "talent_categories" }

// Post is the GORM model for content posts.
type Post struct {
	PostID      int    `gorm:"primaryKey;autoIncrement"`
	UserID      int    `gorm:"not null"`
	CategoryID  *int
	Description string `gorm:"type:varchar(100);not null"`
	VideoURL    string `gorm:"type:varchar(255);not null"`
	IsPublic    bool   `gorm:"default:true"`
	CommunityID *int
	UploadedAt  time.Time `gorm:"autoCreateTime"`

	User     *User           `gorm:"foreignKey:UserID"`
	Category *TalentCategory `gorm:"foreignKey:CategoryID"`
	Likes    []PostLike      `gorm:"foreignKey:PostID"`
	Comments []Comment       `gorm:"foreignKey:PostID"`
}

func (Post) TableName() string { return "posts" }

// PostLike records a user liking a post.
type PostLike struct {
	PostID  int       `gorm:"primaryKey"`
	UserID  int       `gorm:"primaryKey"`
	LikedAt time.Time `gorm:"autoCreateTime"`
}

func (PostLike) TableName() string { return "post_likes" }

// Comment records a user commenting on a post.
type Comment struct {
	CommentID int       `gorm:"primaryKey;autoIncrement"`
	PostID    int       `gorm:"not null"`
	UserID    int       `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Comment) TableName() string { return "comments" }

// AllModels lists every model for auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&UserTalentCategory{},
		&Community{},
		&CommunityMember{},
		&Job{},
		&JobTalentCategory{},
		&TalentCategory{},
		&Post{},
		&PostLike{},
		&Comment{},
	}
}
