package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/talentshowcase/search-service/internal/domain"
)

type gormPostStore struct {
	db *gorm.DB
}

func (s *gormPostStore) base(ctx context.Context, f Filters) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.Post{})

	if f.Query != "" {
		q = q.Where("LOWER(posts.description) LIKE ?", likePattern(f.Query))
	}

	if f.TalentID != nil {
		q = q.Where("posts.category_id = ?", *f.TalentID)
	}

	return q
}

func (s *gormPostStore) Search(ctx context.Context, f Filters, sort Sort, window int) ([]PostRow, error) {
	var rows []PostRow
	// Post titles are synthesized as "Post by <author>", so name ordering
	// follows the author's username.
	err := s.base(ctx, f).
		Select(`posts.post_id, posts.description, posts.video_url, posts.uploaded_at,
			posts.is_public,
			users.username AS author_name,
			COALESCE(talent_categories.name, '') AS category_name,
			(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = posts.post_id) AS like_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = posts.post_id) AS comment_count`).
		Joins("JOIN users ON users.user_id = posts.user_id").
		Joins("LEFT JOIN talent_categories ON talent_categories.category_id = posts.category_id").
		Order(orderClause(sort, s.db.Dialector.Name(), "posts.uploaded_at", "users.username", "posts.post_id")).
		Limit(window).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormPostStore) Count(ctx context.Context, f Filters) (int, error) {
	var n int64
	if err := s.base(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
