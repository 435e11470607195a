package services

import "nearby/internal/models/db_models"

// mergeVenues reconciles freshly fetched venues with what the store
// already holds. It is pure and vote-preserving: descriptive fields
// come from the fetch, feedback counters always come from the stored
// side. Stored entries keep their relative order; genuinely new venues
// are appended with zeroed counters.
//
// The storage upsert enforces the same counter rule independently, so
// a regression in either layer cannot lose a vote on its own.
func mergeVenues(stored, fetched []db_models.Venue) []db_models.Venue {
	merged := make([]db_models.Venue, len(stored))
	copy(merged, stored)

	for _, f := range fetched {
		idx := -1
		for i := range merged {
			if sameVenue(merged[i], f) {
				idx = i
				break
			}
		}

		if idx < 0 {
			f.Upvotes = 0
			f.Downvotes = 0
			merged = append(merged, f)
			continue
		}

		f.ID = merged[idx].ID
		f.CreatedAt = merged[idx].CreatedAt
		f.Upvotes = merged[idx].Upvotes
		f.Downvotes = merged[idx].Downvotes
		merged[idx] = f
	}
	return merged
}

// sameVenue matches on the provider-stable id when both sides carry
// one, else on the natural key. A provider renaming a venue between
// fetches therefore shows up as a new venue, not an update.
func sameVenue(a, b db_models.Venue) bool {
	if a.ExternalRef != "" && b.ExternalRef != "" {
		return a.ExternalRef == b.ExternalRef
	}
	return a.Latitude == b.Latitude && a.Longitude == b.Longitude && a.Name == b.Name
}
