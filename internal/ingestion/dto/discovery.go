package dto

import "time"

// DiscoveredURL is a candidate article URL returned by discovery, with an
// optional publication timestamp. URLs without a timestamp are treated as
// presumed-recent.
type DiscoveredURL struct {
	URL         string
	PublishedAt *time.Time
}

// ExaSearchRequest is the search API request body.
type ExaSearchRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"numResults"`
}

// ExaSearchResponse is the search API response body.
type ExaSearchResponse struct {
	Results []ExaResult `json:"results"`
}

// ExaResult is one search hit.
type ExaResult struct {
	URL           string `json:"url"`
	PublishedDate string `json:"publishedDate,omitempty"`
}
