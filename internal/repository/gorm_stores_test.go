package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talentshowcase/search-service/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

// testDB opens a throwaway sqlite database seeded with a small cross-type
// fixture: three users, two communities, two jobs, two talent categories
// and two posts, with associations between them.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "search_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))

	fixtures := []interface{}{
		&domain.User{UserID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "x",
			Bio: "Jazz guitarist", ProfilePictureURL: "/img/alice.png", CreatedAt: day(10), IsActive: true},
		&domain.User{UserID: 2, Username: "bob", Email: "bob@example.com", PasswordHash: "x",
			Bio: "Drummer and producer", CreatedAt: day(9), IsActive: true},
		&domain.User{UserID: 3, Username: "carol", Email: "carol@music.io", PasswordHash: "x",
			CreatedAt: day(8), IsActive: false},

		&domain.TalentCategory{CategoryID: 1, Name: "Music", Description: "All things music", CreatedAt: day(1)},
		&domain.TalentCategory{CategoryID: 2, Name: "Dance", Description: "Dance performances", CreatedAt: day(2)},

		&domain.UserTalentCategory{UserID: 1, TalentCategoryID: 1, Level: "Expert"},
		&domain.UserTalentCategory{UserID: 2, TalentCategoryID: 1, Level: "Beginner"},
		&domain.UserTalentCategory{UserID: 3, TalentCategoryID: 2, Level: "Expert"},

		&domain.Community{CommunityID: 1, Name: "Guitar Heroes", Description: "for guitar players",
			CreatorID: 1, CreatedAt: day(12)},
		&domain.Community{CommunityID: 2, Name: "Dance Crew", CreatorID: 2, CreatedAt: day(5)},

		&domain.CommunityMember{CommunityID: 1, UserID: 2, Role: "member"},
		&domain.CommunityMember{CommunityID: 2, UserID: 2, Role: "admin"},

		&domain.Job{JobID: 1, JobTitle: "Guitarist wanted", JobDescription: "Need a jazz guitarist",
			CompanyName: "Band Inc", Location: "Berlin", Salary: "50k", UserID: 2, CreatedAt: day(6)},
		&domain.Job{JobID: 2, JobTitle: "Backup dancer", UserID: 1, CreatedAt: day(7)},

		&domain.JobTalentCategory{JobID: 1, TalentCategoryID: 1, Level: "Expert"},
		&domain.JobTalentCategory{JobID: 2, TalentCategoryID: 2, Level: "Beginner"},

		&domain.Post{PostID: 1, UserID: 1, CategoryID: intPtr(1), Description: "My guitar solo",
			VideoURL: "/v/1.mp4", IsPublic: true, UploadedAt: day(11)},
		&domain.Post{PostID: 2, UserID: 2, Description: "late night drumming",
			VideoURL: "/v/2.mp4", IsPublic: true, UploadedAt: day(4)},

		&domain.PostLike{PostID: 1, UserID: 2},
		&domain.PostLike{PostID: 1, UserID: 3},
		&domain.Comment{CommentID: 1, PostID: 1, UserID: 2, Content: "nice"},
	}
	for _, f := range fixtures {
		require.NoError(t, db.Create(f).Error)
	}

	return db
}

func dateDesc() Sort {
	return Sort{By: domain.SortByDate, Order: domain.SortOrderDesc}
}

func userIDs(rows []UserRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestUserStoreQueryMatchesNameEmailAndBio(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	// "guitar" only appears in alice's bio.
	rows, err := stores.Users.Search(ctx, Filters{Query: "GUITAR"}, dateDesc(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, userIDs(rows))

	// Substring of carol's email domain, case-insensitively.
	rows, err = stores.Users.Search(ctx, Filters{Query: "Music.IO"}, dateDesc(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, userIDs(rows))

	rows, err = stores.Users.Search(ctx, Filters{Query: "no such person"}, dateDesc(), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUserStoreTalentAndLevelFilters(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	rows, err := stores.Users.Search(ctx, Filters{TalentID: intPtr(1)}, dateDesc(), 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, userIDs(rows))

	rows, err = stores.Users.Search(ctx, Filters{Level: "expert"}, dateDesc(), 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, userIDs(rows))

	// Both filters must hold on the same association: carol is an expert,
	// but not in Music.
	rows, err = stores.Users.Search(ctx, Filters{TalentID: intPtr(1), Level: "expert"}, dateDesc(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, userIDs(rows))
}

func TestUserStoreWindowAndCount(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	rows, err := stores.Users.Search(ctx, Filters{}, dateDesc(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, userIDs(rows))

	// Count ignores the window.
	n, err := stores.Users.Count(ctx, Filters{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUserStoreNameOrder(t *testing.T) {
	stores := NewGormStores(testDB(t))

	rows, err := stores.Users.Search(context.Background(), Filters{},
		Sort{By: domain.SortByName, Order: domain.SortOrderAsc}, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, userIDs(rows))
}

func TestOrderClauseForcesBinaryNameCollation(t *testing.T) {
	nameAsc := Sort{By: domain.SortByName, Order: domain.SortOrderAsc}

	assert.Equal(t, `users.username COLLATE "C" ASC, users.user_id ASC`,
		orderClause(nameAsc, "postgres", "users.created_at", "users.username", "users.user_id"))
	assert.Equal(t, "users.username COLLATE utf8mb4_bin ASC, users.user_id ASC",
		orderClause(nameAsc, "mysql", "users.created_at", "users.username", "users.user_id"))
	assert.Equal(t, "users.username ASC, users.user_id ASC",
		orderClause(nameAsc, "sqlite", "users.created_at", "users.username", "users.user_id"))

	// Date ordering never needs a collation override.
	assert.Equal(t, "users.created_at DESC, users.user_id ASC",
		orderClause(dateDesc(), "postgres", "users.created_at", "users.username", "users.user_id"))
}

func TestUserStoreNameWindowMatchesOrdinalOrder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "collation_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	// Uppercase sorts before lowercase in byte order; a locale collation
	// would bury Zulu behind all the alpha rows and the window would miss it.
	names := []string{"alpha01", "alpha02", "alpha03", "Zulu"}
	for i, name := range names {
		require.NoError(t, db.Create(&domain.User{
			UserID: i + 1, Username: name, Email: name + "@example.com",
			PasswordHash: "x", CreatedAt: day(i + 1),
		}).Error)
	}

	stores := NewGormStores(db)
	nameAsc := Sort{By: domain.SortByName, Order: domain.SortOrderAsc}

	rows, err := stores.Users.Search(context.Background(), Filters{}, nameAsc, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Zulu", rows[0].Username)

	rows, err = stores.Users.Search(context.Background(), Filters{}, nameAsc, 10)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Zulu", rows[0].Username)
	assert.Equal(t, "alpha01", rows[1].Username)
}

func TestCommunityStoreJoinsCreatorAndCountsMembers(t *testing.T) {
	stores := NewGormStores(testDB(t))

	rows, err := stores.Communities.Search(context.Background(), Filters{Query: "guitar"}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Guitar Heroes", rows[0].Name)
	assert.Equal(t, "alice", rows[0].CreatorName)
	assert.Equal(t, 1, rows[0].MemberCount)

	// Level and talent filters do not apply to communities.
	n, err := stores.Communities.Count(context.Background(), Filters{Level: "Expert", TalentID: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCommunityStoreMembershipsFor(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	roles, err := stores.Communities.MembershipsFor(ctx, []int{1, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "member", 2: "admin"}, roles)

	roles, err = stores.Communities.MembershipsFor(ctx, []int{1, 2}, 1)
	require.NoError(t, err)
	assert.Empty(t, roles)

	roles, err = stores.Communities.MembershipsFor(ctx, nil, 2)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestJobStoreFilters(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	rows, err := stores.Jobs.Search(ctx, Filters{Query: "jazz"}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, "bob", rows[0].EmployerName)
	assert.Equal(t, "Band Inc", rows[0].CompanyName)

	// Level matches as a substring against the required level.
	rows, err = stores.Jobs.Search(ctx, Filters{Level: "begin"}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ID)

	// Level and talent are independent clauses for jobs: an expert Music
	// job does not match talent 1 + level beginner.
	n, err := stores.Jobs.Count(ctx, Filters{TalentID: intPtr(1), Level: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = stores.Jobs.Count(ctx, Filters{TalentID: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestJobStoreDistinctLevels(t *testing.T) {
	stores := NewGormStores(testDB(t))

	levels, err := stores.Jobs.DistinctLevels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Beginner", "Expert"}, levels)
}

func TestTalentStoreCountsAssociatedUsers(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	rows, err := stores.Talents.Search(ctx, Filters{Query: "music"}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Music", rows[0].Name)
	assert.Equal(t, 2, rows[0].UserCount)

	rows, err = stores.Talents.Search(ctx, Filters{TalentID: intPtr(2)}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ID)
}

func TestPostStoreProjection(t *testing.T) {
	stores := NewGormStores(testDB(t))
	ctx := context.Background()

	rows, err := stores.Posts.Search(ctx, Filters{Query: "guitar"}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].AuthorName)
	assert.Equal(t, "Music", rows[0].CategoryName)
	assert.Equal(t, 2, rows[0].LikeCount)
	assert.Equal(t, 1, rows[0].CommentCount)

	// Posts without a category scan as an empty category name.
	rows, err = stores.Posts.Search(ctx, Filters{Query: "drumming"}, dateDesc(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].CategoryName)
	assert.Equal(t, 0, rows[0].LikeCount)

	n, err := stores.Posts.Count(ctx, Filters{TalentID: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostStoreNameOrderFollowsAuthor(t *testing.T) {
	stores := NewGormStores(testDB(t))

	rows, err := stores.Posts.Search(context.Background(), Filters{},
		Sort{By: domain.SortByName, Order: domain.SortOrderAsc}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].AuthorName)
	assert.Equal(t, "bob", rows[1].AuthorName)
}
