package service

import (
	"context"

	"github.com/talentshowcase/search-service/internal/domain"
)

// SearchService defines the interface for the federated search business logic.
type SearchService interface {
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
	AvailableFilters(ctx context.Context) (*domain.FilterCatalog, error)
}
