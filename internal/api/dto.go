package api

import (
	"github.com/starford/othala/internal/filter"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/session"
)

// MoveRequest is the request body for reordering a record.
type MoveRequest struct {
	Direction string `json:"direction" example:"up"`
}

// ProfileRequest replaces the top-level bio fields and socials (aliased
// from the domain layer).
type ProfileRequest = session.Profile

// ResultRef is a single search hit in the API response (aliased from the
// filter engine).
type ResultRef = filter.ResultRef

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []ResultRef `json:"results"`
}

// SkillsResponse wraps the document-wide skill union used to populate the
// filter surface.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// PortfolioResponse is the full document (aliased from the domain layer).
type PortfolioResponse = models.Portfolio

// RecordResponse is a resolved record for detail display (aliased from the
// filter engine).
type RecordResponse = filter.Resolved
