package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/talentshowcase/search-service/internal/domain"
	"github.com/talentshowcase/search-service/internal/service"
	"github.com/talentshowcase/search-service/pkg/log"
	"github.com/talentshowcase/search-service/pkg/middleware"
	"github.com/talentshowcase/search-service/pkg/response"
)

// Handler handles HTTP requests for search service.
type Handler struct {
	searchService service.SearchService
}

// NewHandler creates a new HTTP handler.
func NewHandler(searchService service.SearchService) *Handler {
	return &Handler{
		searchService: searchService,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/search", h.Search)
		api.GET("/search/filters", h.Filters)
	}
}

// Search handles the unified search across all record collections.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		l.Warn().Err(err).Msg("invalid search request")
		response.BadRequest(c, err.Error())
		return
	}

	if userID, ok := middleware.CallerID(c); ok {
		req.CallerID = &userID
	}

	result, err := h.searchService.Search(ctx, &req)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			l.Warn().Err(err).Msg("invalid search request")
			response.BadRequest(c, verr.Error())
		case errors.Is(err, domain.ErrStoreUnavailable):
			l.Error().Err(err).Str(log.FieldQuery, req.Query).Str(log.FieldSearchType, req.Type).Msg("search failed")
			response.ServiceUnavailable(c, "search temporarily unavailable")
		default:
			l.Error().Err(err).Str(log.FieldQuery, req.Query).Str(log.FieldSearchType, req.Type).Msg("search failed")
			response.InternalError(c, "search failed")
		}
		return
	}

	response.Success(c, result)
}

// Filters reports the filterable record types and skill levels.
func (h *Handler) Filters(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	catalog, err := h.searchService.AvailableFilters(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			l.Error().Err(err).Msg("filter catalog failed")
			response.ServiceUnavailable(c, "search temporarily unavailable")
			return
		}
		l.Error().Err(err).Msg("filter catalog failed")
		response.InternalError(c, "failed to load filters")
		return
	}

	response.Success(c, catalog)
}
