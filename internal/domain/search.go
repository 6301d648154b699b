package domain

import "time"

// ResultType identifies the kind of record a search result belongs to.
type ResultType string

const (
	TypeUser      ResultType = "user"
	TypeCommunity ResultType = "community"
	TypeJob       ResultType = "job"
	TypeTalent    ResultType = "talent"
	TypePost      ResultType = "post"

	// TypeAll is a request-only selector meaning "every type".
	TypeAll ResultType = "all"
)

// ResultTypes is the fixed set of searchable record types, in merge order.
var ResultTypes = []ResultType{TypeUser, TypeCommunity, TypeJob, TypeTalent, TypePost}

// Sort keys and orders accepted by the search endpoint.
const (
	SortByRelevance = "relevance"
	SortByDate      = "date"
	SortByName      = "name"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxQueryLength  = 200

	// MaxPage caps pagination depth. Each matcher materializes a candidate
	// window of page*pageSize rows, so page must stay bounded.
	MaxPage = 1000
)

// SearchRequest is the unified search request. Field names follow the wire
// contract; CallerID is filled in from the authenticated session, never from
// the query string.
type SearchRequest struct {
	Query     string `form:"query"`
	Type      string `form:"type"`
	Level     string `form:"level"`
	TalentID  *int   `form:"talentId"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`

	CallerID *int `form:"-" json:"-"`
}

// SearchResult is a single hit projected into the common result shape.
// AdditionalData carries type-specific auxiliary fields.
type SearchResult struct {
	Type           ResultType             `json:"type"`
	ID             int                    `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	ImageURL       string                 `json:"imageUrl,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	RelevanceScore float64                `json:"relevanceScore"`
	AdditionalData map[string]interface{} `json:"additionalData"`
}

// SearchMetadata describes pagination and per-type counts for a response.
type SearchMetadata struct {
	TotalResults int                `json:"totalResults"`
	Page         int                `json:"page"`
	PageSize     int                `json:"pageSize"`
	TotalPages   int                `json:"totalPages"`
	TypeCounts   map[ResultType]int `json:"typeCounts"`
}

// SearchResponse is the envelope returned by the search operation.
type SearchResponse struct {
	Results  []SearchResult `json:"results"`
	Metadata SearchMetadata `json:"metadata"`
}

// FilterCatalog reports which types and skill levels are filterable.
// Levels are the distinct level values currently attached to job postings.
type FilterCatalog struct {
	Types  []ResultType `json:"types"`
	Levels []string     `json:"levels"`
}
