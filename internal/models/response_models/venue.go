package response_models

import (
	"encoding/json"

	"nearby/internal/models/db_models"
)

type Venue struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	Latitude       float64                     `json:"latitude"`
	Longitude      float64                     `json:"longitude"`
	VenueType      string                      `json:"venue_type"`
	Modifier       string                      `json:"modifier,omitempty"`
	Description    string                      `json:"description,omitempty"`
	DistanceMeters float64                     `json:"distance_meters,omitempty"`
	Hours          []db_models.OpeningInterval `json:"hours"`
	Location       json.RawMessage             `json:"location,omitempty"`
	Upvotes        int                         `json:"upvotes"`
	Downvotes      int                         `json:"downvotes"`
}

func VenueFromModel(v db_models.Venue) Venue {
	modifier := ""
	if v.Modifier != nil {
		modifier = *v.Modifier
	}
	return Venue{
		ID:             v.ID.String(),
		Name:           v.Name,
		Latitude:       v.Latitude,
		Longitude:      v.Longitude,
		VenueType:      string(v.VenueType),
		Modifier:       modifier,
		Description:    v.Description,
		DistanceMeters: v.Distance,
		Hours:          v.Hours,
		Location:       json.RawMessage(v.Location),
		Upvotes:        v.Upvotes,
		Downvotes:      v.Downvotes,
	}
}
