package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/talentshowcase/search-service/internal/cache"
	"github.com/talentshowcase/search-service/internal/domain"
	"github.com/talentshowcase/search-service/internal/repository"
	"github.com/talentshowcase/search-service/pkg/log"
)

const catalogTTL = 10 * time.Minute

type searchServiceImpl struct {
	stores   repository.Stores
	cache    cache.SearchCache
	cacheTTL time.Duration
	sf       singleflight.Group
}

// NewSearchService builds the federated search service on top of the five
// type stores and a response cache.
func NewSearchService(stores repository.Stores, c cache.SearchCache, cacheTTL time.Duration) SearchService {
	return &searchServiceImpl{
		stores:   stores,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// matcherOutput carries one type's candidate window and its exact filtered
// count out of the fan-out.
type matcherOutput struct {
	results []domain.SearchResult
	count   int
}

func (s *searchServiceImpl) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	if err := normalizeRequest(req); err != nil {
		return nil, err
	}

	key := s.cache.Key(req)

	// Collapse concurrent identical requests onto one execution; followers
	// share the leader's response.
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, cerr := s.cache.GetResponse(ctx, key); cerr == nil {
			return cached, nil
		} else if !errors.Is(cerr, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(cerr).Msg("search cache read failed")
		}

		resp, serr := s.executeSearch(ctx, req)
		if serr != nil {
			return nil, serr
		}

		s.asyncCacheSet(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.SearchResponse), nil
}

func (s *searchServiceImpl) executeSearch(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	types := activeTypes(req)
	filters := repository.Filters{
		Query:    req.Query,
		Level:    req.Level,
		TalentID: req.TalentID,
	}
	sorting := repository.Sort{By: req.SortBy, Order: req.SortOrder}

	// Each store returns the first page*pageSize rows in its own projection
	// of the global order, so the union is guaranteed to contain everything
	// the requested page can show.
	window := req.Page * req.PageSize

	outputs := make([]matcherOutput, len(types))
	g, gctx := errgroup.WithContext(ctx)

	for i, t := range types {
		g.Go(s.matcher(gctx, t, filters, sorting, window, req.CallerID, &outputs[i]))
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	merged := make([]domain.SearchResult, 0, window)
	total := 0
	typeCounts := make(map[domain.ResultType]int, len(types))
	for i, t := range types {
		merged = append(merged, outputs[i].results...)
		typeCounts[t] = outputs[i].count
		total += outputs[i].count
	}

	sortResults(merged, req.SortBy, req.SortOrder)

	totalPages := 0
	if total > 0 {
		totalPages = (total + req.PageSize - 1) / req.PageSize
	}

	return &domain.SearchResponse{
		Results: pageSlice(merged, req.Page, req.PageSize),
		Metadata: domain.SearchMetadata{
			TotalResults: total,
			Page:         req.Page,
			PageSize:     req.PageSize,
			TotalPages:   totalPages,
			TypeCounts:   typeCounts,
		},
	}, nil
}

// matcher returns the fan-out closure for one result type. Every closure
// fills exactly one slot of the outputs slice, so no locking is needed.
func (s *searchServiceImpl) matcher(ctx context.Context, t domain.ResultType, f repository.Filters, sorting repository.Sort, window int, callerID *int, out *matcherOutput) func() error {
	switch t {
	case domain.TypeUser:
		return func() error {
			rows, err := s.stores.Users.Search(ctx, f, sorting, window)
			if err != nil {
				return fmt.Errorf("users: %w", err)
			}
			count, err := s.stores.Users.Count(ctx, f)
			if err != nil {
				return fmt.Errorf("users: %w", err)
			}
			results := make([]domain.SearchResult, 0, len(rows))
			for _, r := range rows {
				results = append(results, projectUser(r))
			}
			*out = matcherOutput{results: results, count: count}
			return nil
		}

	case domain.TypeCommunity:
		return func() error {
			rows, err := s.stores.Communities.Search(ctx, f, sorting, window)
			if err != nil {
				return fmt.Errorf("communities: %w", err)
			}
			count, err := s.stores.Communities.Count(ctx, f)
			if err != nil {
				return fmt.Errorf("communities: %w", err)
			}
			var roles map[int]string
			if callerID != nil && len(rows) > 0 {
				ids := make([]int, 0, len(rows))
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
				roles, err = s.stores.Communities.MembershipsFor(ctx, ids, *callerID)
				if err != nil {
					return fmt.Errorf("communities: %w", err)
				}
			}
			results := make([]domain.SearchResult, 0, len(rows))
			for _, r := range rows {
				results = append(results, projectCommunity(r, callerID, roles))
			}
			*out = matcherOutput{results: results, count: count}
			return nil
		}

	case domain.TypeJob:
		return func() error {
			rows, err := s.stores.Jobs.Search(ctx, f, sorting, window)
			if err != nil {
				return fmt.Errorf("jobs: %w", err)
			}
			count, err := s.stores.Jobs.Count(ctx, f)
			if err != nil {
				return fmt.Errorf("jobs: %w", err)
			}
			results := make([]domain.SearchResult, 0, len(rows))
			for _, r := range rows {
				results = append(results, projectJob(r))
			}
			*out = matcherOutput{results: results, count: count}
			return nil
		}

	case domain.TypeTalent:
		return func() error {
			rows, err := s.stores.Talents.Search(ctx, f, sorting, window)
			if err != nil {
				return fmt.Errorf("talents: %w", err)
			}
			count, err := s.stores.Talents.Count(ctx, f)
			if err != nil {
				return fmt.Errorf("talents: %w", err)
			}
			results := make([]domain.SearchResult, 0, len(rows))
			for _, r := range rows {
				results = append(results, projectTalent(r))
			}
			*out = matcherOutput{results: results, count: count}
			return nil
		}

	default: // domain.TypePost
		return func() error {
			rows, err := s.stores.Posts.Search(ctx, f, sorting, window)
			if err != nil {
				return fmt.Errorf("posts: %w", err)
			}
			count, err := s.stores.Posts.Count(ctx, f)
			if err != nil {
				return fmt.Errorf("posts: %w", err)
			}
			results := make([]domain.SearchResult, 0, len(rows))
			for _, r := range rows {
				results = append(results, projectPost(r))
			}
			*out = matcherOutput{results: results, count: count}
			return nil
		}
	}
}

func (s *searchServiceImpl) AvailableFilters(ctx context.Context) (*domain.FilterCatalog, error) {
	v, err, _ := s.sf.Do("filters", func() (interface{}, error) {
		if cached, cerr := s.cache.GetCatalog(ctx); cerr == nil {
			return cached, nil
		} else if !errors.Is(cerr, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(cerr).Msg("filter catalog cache read failed")
		}

		levels, lerr := s.stores.Jobs.DistinctLevels(ctx)
		if lerr != nil {
			if errors.Is(lerr, context.Canceled) || errors.Is(lerr, context.DeadlineExceeded) {
				return nil, lerr
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, lerr)
		}

		catalog := &domain.FilterCatalog{
			Types:  domain.ResultTypes,
			Levels: levels,
		}

		logger := log.Ctx(ctx)
		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if serr := s.cache.SetCatalog(setCtx, catalog, catalogTTL); serr != nil {
				logger.Warn().Err(serr).Msg("filter catalog cache write failed")
			}
		}()

		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.FilterCatalog), nil
}

// asyncCacheSet writes the response in the background so a slow cache never
// delays the response path.
func (s *searchServiceImpl) asyncCacheSet(ctx context.Context, key string, resp *domain.SearchResponse) {
	logger := log.Ctx(ctx)
	go func() {
		setCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.SetResponse(setCtx, key, resp, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("search cache write failed")
		}
	}()
}
