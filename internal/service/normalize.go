package service

import (
	"strings"
	"unicode/utf8"

	"github.com/talentshowcase/search-service/internal/domain"
)

// normalizeRequest validates and clamps a raw search request in place.
// Absent enum fields fall back to their defaults silently; present-but-
// invalid values fail with a ValidationError naming the field and its
// accepted values. Page and pageSize are clamped, never rejected.
func normalizeRequest(req *domain.SearchRequest) error {
	req.Query = strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(req.Query) > domain.MaxQueryLength {
		return domain.ErrQueryTooLong()
	}

	switch t := strings.ToLower(strings.TrimSpace(req.Type)); t {
	case "":
		req.Type = string(domain.TypeAll)
	case string(domain.TypeUser), string(domain.TypeCommunity), string(domain.TypeJob),
		string(domain.TypeTalent), string(domain.TypePost), string(domain.TypeAll):
		req.Type = t
	default:
		return domain.ErrInvalidField("type",
			string(domain.TypeUser), string(domain.TypeCommunity), string(domain.TypeJob),
			string(domain.TypeTalent), string(domain.TypePost), string(domain.TypeAll))
	}

	switch by := strings.ToLower(strings.TrimSpace(req.SortBy)); by {
	case "":
		req.SortBy = domain.SortByRelevance
	case domain.SortByRelevance, domain.SortByDate, domain.SortByName:
		req.SortBy = by
	default:
		return domain.ErrInvalidField("sortBy",
			domain.SortByRelevance, domain.SortByDate, domain.SortByName)
	}

	switch order := strings.ToLower(strings.TrimSpace(req.SortOrder)); order {
	case "":
		req.SortOrder = domain.SortOrderDesc
	case domain.SortOrderAsc, domain.SortOrderDesc:
		req.SortOrder = order
	default:
		return domain.ErrInvalidField("sortOrder", domain.SortOrderAsc, domain.SortOrderDesc)
	}

	if req.Page < domain.DefaultPage {
		req.Page = domain.DefaultPage
	}
	if req.Page > domain.MaxPage {
		req.Page = domain.MaxPage
	}
	if req.PageSize < 1 || req.PageSize > domain.MaxPageSize {
		req.PageSize = domain.DefaultPageSize
	}

	req.Level = strings.TrimSpace(req.Level)

	return nil
}

// activeTypes resolves the type selector of a normalized request into the
// set of matchers to invoke.
func activeTypes(req *domain.SearchRequest) []domain.ResultType {
	if req.Type == string(domain.TypeAll) {
		return domain.ResultTypes
	}
	return []domain.ResultType{domain.ResultType(req.Type)}
}
