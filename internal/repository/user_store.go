package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentshowcase/search-service/internal/domain"
)

type gormUserStore struct {
	db *gorm.DB
}

func (s *gormUserStore) base(ctx context.Context, f Filters) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.User{})

	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where(
			"LOWER(users.username) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.bio) LIKE ?",
			p, p, p,
		)
	}

	// Level and category filters test the user's talent associations; a
	// user matches when any one association satisfies the filter. When both
	// are present they must hold on the same association.
	switch {
	case f.TalentID != nil && f.Level != "":
		q = q.Where(
			"EXISTS (SELECT 1 FROM user_talent_categories utc WHERE utc.user_id = users.user_id AND utc.talent_category_id = ? AND LOWER(utc.level) LIKE ?)",
			*f.TalentID, likePattern(f.Level),
		)
	case f.TalentID != nil:
		q = q.Where(
			"EXISTS (SELECT 1 FROM user_talent_categories utc WHERE utc.user_id = users.user_id AND utc.talent_category_id = ?)",
			*f.TalentID,
		)
	case f.Level != "":
		q = q.Where(
			"EXISTS (SELECT 1 FROM user_talent_categories utc WHERE utc.user_id = users.user_id AND LOWER(utc.level) LIKE ?)",
			likePattern(f.Level),
		)
	}

	return q
}

func (s *gormUserStore) Search(ctx context.Context, f Filters, sort Sort, window int) ([]UserRow, error) {
	var rows []UserRow
	err := s.base(ctx, f).
		Select("users.user_id, users.username, users.bio, users.profile_picture_url, users.created_at, users.email, users.is_active").
		Order(orderClause(sort, s.db.Dialector.Name(), "users.created_at", "users.username", "users.user_id")).
		Limit(window).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormUserStore) Count(ctx context.Context, f Filters) (int, error) {
	var n int64
	if err := s.base(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
