package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentshowcase/search-service/internal/domain"
)

type gormTalentStore struct {
	db *gorm.DB
}

func (s *gormTalentStore) base(ctx context.Context, f Filters) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.TalentCategory{})

	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where("LOWER(talent_categories.name) LIKE ? OR LOWER(talent_categories.description) LIKE ?", p, p)
	}

	if f.TalentID != nil {
		q = q.Where("talent_categories.category_id = ?", *f.TalentID)
	}

	return q
}

func (s *gormTalentStore) Search(ctx context.Context, f Filters, sort Sort, window int) ([]TalentRow, error) {
	var rows []TalentRow
	err := s.base(ctx, f).
		Select(`talent_categories.category_id, talent_categories.name,
			talent_categories.description, talent_categories.created_at,
			(SELECT COUNT(*) FROM user_talent_categories utc WHERE utc.talent_category_id = talent_categories.category_id) AS user_count`).
		Order(orderClause(sort, s.db.Dialector.Name(), "talent_categories.created_at", "talent_categories.name", "talent_categories.category_id")).
		Limit(window).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormTalentStore) Count(ctx context.Context, f Filters) (int, error) {
	var n int64
	if err := s.base(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
