package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/config"
	"nearby/pkg/utils"
)

type VenueServiceInterface interface {
	ResolveVenues(ctx context.Context, query request_models.VenueQuery) ([]response_models.Venue, error)
	CastVote(ctx context.Context, venueID, userID, kind string) error
}

// VenueService is the cache-or-fetch decision engine. It is stateless:
// all durable state lives behind the repository, and each call runs
// Query -> (Fetch -> Merge -> Upsert) strictly in sequence.
type VenueService struct {
	venueRepo  repositories.VenueRepository
	gateway    PlacesGateway
	minResults int
}

func NewVenueService(venueRepo repositories.VenueRepository, gateway PlacesGateway, cfg *config.Config) VenueServiceInterface {
	return &VenueService{
		venueRepo:  venueRepo,
		gateway:    gateway,
		minResults: cfg.MinResults,
	}
}

func (s *VenueService) ResolveVenues(ctx context.Context, query request_models.VenueQuery) ([]response_models.Venue, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	asOf := query.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	asOf = utils.RoundToHalfHour(asOf)

	stored, err := s.venueRepo.QueryNearby(ctx, query.Latitude, query.Longitude, query.VenueType, query.Modifier, asOf)
	if err != nil {
		log.Printf("Error querying venues: %v", err)
		return nil, utils.ErrDatabaseError
	}

	if len(stored) >= s.minResults {
		return toResponses(stored), nil
	}

	// Below threshold: top up from the provider. A failed top-up fails
	// the whole call; partial cached results are not returned.
	fetched, err := s.gateway.FetchVenues(ctx, query.Latitude, query.Longitude, query.VenueType, query.Modifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFetch, err)
	}

	merged := mergeVenues(stored, fetched)
	if len(merged) == 0 {
		return []response_models.Venue{}, nil
	}

	persisted, err := s.venueRepo.UpsertBatch(ctx, merged)
	if err != nil {
		log.Printf("Error persisting venues: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return toResponses(persisted), nil
}

func (s *VenueService) CastVote(ctx context.Context, venueID, userID, kind string) error {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return fmt.Errorf("%w: malformed venue id", utils.ErrInvalidInput)
	}
	if userID == "" {
		return fmt.Errorf("%w: missing user id", utils.ErrInvalidInput)
	}
	voteKind, err := db_models.ParseVoteKind(kind)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	if err := s.venueRepo.CastVote(ctx, id, userID, voteKind); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrVenueNotFound
		}
		log.Printf("Error casting vote: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func validateQuery(query request_models.VenueQuery) error {
	if query.Latitude < -90 || query.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", utils.ErrInvalidInput)
	}
	if query.Longitude < -180 || query.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", utils.ErrInvalidInput)
	}
	if _, err := db_models.ParseVenueType(string(query.VenueType)); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	return nil
}

func toResponses(venues []db_models.Venue) []response_models.Venue {
	responses := make([]response_models.Venue, 0, len(venues))
	for _, v := range venues {
		responses = append(responses, response_models.VenueFromModel(v))
	}
	return responses
}
