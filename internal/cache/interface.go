package cache

import (
	"context"
	"time"

	"github.com/talentshowcase/search-service/internal/domain"
)

// SearchCache defines the interface for caching search responses and the
// filter catalog.
type SearchCache interface {
	Key(req *domain.SearchRequest) string
	GetResponse(ctx context.Context, key string) (*domain.SearchResponse, error)
	SetResponse(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error
	GetCatalog(ctx context.Context) (*domain.FilterCatalog, error)
	SetCatalog(ctx context.Context, catalog *domain.FilterCatalog, ttl time.Duration) error
	Close() error
}
