package request_models

import (
	"time"

	"nearby/internal/models/db_models"
)

// VenueQuery is the fully-resolved query context handed to the
// enrichment engine. The request surface is responsible for filling in
// defaults (IP-derived location, time-of-day venue type) before this
// point; the engine only validates, it never infers.
type VenueQuery struct {
	Latitude  float64
	Longitude float64
	VenueType db_models.VenueType
	Modifier  string
	AsOf      time.Time
}

type CastVoteRequest struct {
	Kind string `json:"kind" binding:"required"`
}

type TokenRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
