package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentshowcase/search-service/internal/domain"
)

type gormJobStore struct {
	db *gorm.DB
}

func (s *gormJobStore) base(ctx context.Context, f Filters) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.Job{})

	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where("LOWER(jobs.job_title) LIKE ? OR LOWER(jobs.job_description) LIKE ?", p, p)
	}

	if f.Level != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM job_talent_categories jtc WHERE jtc.job_id = jobs.job_id AND LOWER(jtc.level) LIKE ?)",
			likePattern(f.Level),
		)
	}

	if f.TalentID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM job_talent_categories jtc WHERE jtc.job_id = jobs.job_id AND jtc.talent_category_id = ?)",
			*f.TalentID,
		)
	}

	return q
}

func (s *gormJobStore) Search(ctx context.Context, f Filters, sort Sort, window int) ([]JobRow, error) {
	var rows []JobRow
	err := s.base(ctx, f).
		Select(`jobs.job_id, jobs.job_title, jobs.job_description, jobs.company_name,
			jobs.location, jobs.salary, jobs.created_at,
			users.username AS employer_name`).
		Joins("JOIN users ON users.user_id = jobs.user_id").
		Order(orderClause(sort, s.db.Dialector.Name(), "jobs.created_at", "jobs.job_title", "jobs.job_id")).
		Limit(window).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormJobStore) Count(ctx context.Context, f Filters) (int, error) {
	var n int64
	if err := s.base(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *gormJobStore) DistinctLevels(ctx context.Context) ([]string, error) {
	levels := []string{}
	err := s.db.WithContext(ctx).
		Model(&domain.JobTalentCategory{}).
		Distinct("level").
		Order("level").
		Pluck("level", &levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}
