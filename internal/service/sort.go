package service

import (
	"sort"
	"strings"

	"github.com/talentshowcase/search-service/internal/domain"
)

// sortResults orders the merged result set by the requested key. Ties are
// always broken deterministically: relevance falls back to creation time
// descending, and every chain ends at (type, id) ascending, so identical
// requests against an unchanged data set produce identical pages.
func sortResults(results []domain.SearchResult, sortBy, sortOrder string) {
	asc := sortOrder == domain.SortOrderAsc

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		switch sortBy {
		case domain.SortByDate:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				if asc {
					return a.CreatedAt.Before(b.CreatedAt)
				}
				return a.CreatedAt.After(b.CreatedAt)
			}

		case domain.SortByName:
			// Case-sensitive ordinal comparison on the title.
			if c := strings.Compare(a.Title, b.Title); c != 0 {
				if asc {
					return c < 0
				}
				return c > 0
			}

		default: // relevance
			if a.RelevanceScore != b.RelevanceScore {
				return a.RelevanceScore > b.RelevanceScore
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}

		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.ID < b.ID
	})
}

// pageSlice returns the requested window of the globally sorted result set.
// Pages past the end yield an empty, non-nil slice.
func pageSlice(results []domain.SearchResult, page, pageSize int) []domain.SearchResult {
	start := (page - 1) * pageSize
	if start >= len(results) {
		return []domain.SearchResult{}
	}
	end := start + pageSize
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
