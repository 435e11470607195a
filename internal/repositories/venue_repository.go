package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nearby/internal/models/db_models"
	"nearby/pkg/utils"
)

// ResultCap bounds every nearby query regardless of radius.
const ResultCap = 50

const distanceExpr = "earth_distance(ll_to_earth(latitude, longitude), ll_to_earth(?, ?))"

// Descriptive columns refreshed on a natural-key conflict. The vote
// counters are deliberately absent: a re-fetch must never reset them.
var descriptiveColumns = []string{
	"external_ref",
	"venue_type",
	"modifier",
	"description",
	"categories",
	"location",
	"hours",
	"attributes",
	"menu",
	"photos",
	"fetched_at",
	"updated_at",
}

type VenueRepository interface {
	// QueryNearby returns venues of the given type within the radius,
	// open at asOf, ordered by geodesic distance. Empty result is the
	// cache-miss signal, not an error.
	QueryNearby(ctx context.Context, lat, lon float64, venueType db_models.VenueType, modifier string, asOf time.Time) ([]db_models.Venue, error)

	// UpsertBatch persists the batch in one transaction, resolving
	// natural-key conflicts by refreshing descriptive fields only.
	// Returns the post-merge rows in input order.
	UpsertBatch(ctx context.Context, venues []db_models.Venue) ([]db_models.Venue, error)

	// CastVote applies the one-vote-per-user-per-venue state machine.
	// Returns gorm.ErrRecordNotFound when the venue does not exist.
	CastVote(ctx context.Context, venueID uuid.UUID, userID string, kind db_models.VoteKind) error
}

type venueRepository struct {
	db           *gorm.DB
	radiusMeters int
}

func NewVenueRepository(db *gorm.DB, radiusMeters int) VenueRepository {
	return &venueRepository{db: db, radiusMeters: radiusMeters}
}

func (r *venueRepository) QueryNearby(ctx context.Context, lat, lon float64, venueType db_models.VenueType, modifier string, asOf time.Time) ([]db_models.Venue, error) {
	var candidates []db_models.Venue

	err := r.db.WithContext(ctx).
		Select("*, "+distanceExpr+" AS distance", lat, lon).
		Where("venue_type = ?", venueType).
		Where("(modifier IS NULL OR modifier = ?)", modifier).
		Where(distanceExpr+" <= ?", lat, lon, r.radiusMeters).
		Order("distance ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// Operating-hours semantics (inclusive HHMM bounds) live on the
	// model, so the filter runs here rather than in SQL.
	day := asOf.Weekday()
	hhmm := utils.HHMM(asOf)

	venues := make([]db_models.Venue, 0, len(candidates))
	for _, v := range candidates {
		if !v.Hours.OpenAt(day, hhmm) {
			continue
		}
		venues = append(venues, v)
		if len(venues) == ResultCap {
			break
		}
	}
	return venues, nil
}

func (r *venueRepository) UpsertBatch(ctx context.Context, venues []db_models.Venue) ([]db_models.Venue, error) {
	stored := make([]db_models.Venue, len(venues))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range venues {
			v := venues[i]
			v.ID = uuid.Nil // conflict target decides identity, not the surrogate id
			if err := tx.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{
						{Name: "latitude"},
						{Name: "longitude"},
						{Name: "name"},
					},
					DoUpdates: clause.AssignmentColumns(descriptiveColumns),
				},
				clause.Returning{},
			).Create(&v).Error; err != nil {
				return err
			}
			stored[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *venueRepository) CastVote(ctx context.Context, venueID uuid.UUID, userID string, kind db_models.VoteKind) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the venue row so a concurrent upsert cannot interleave
		// with the counter update.
		var venue db_models.Venue
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&venue, "id = ?", venueID).Error; err != nil {
			return err
		}

		var vote db_models.Vote
		err := tx.First(&vote, "venue_id = ? AND user_id = ?", venueID, userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = db_models.Vote{VenueID: venueID, UserID: userID, Kind: kind}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			return bumpCounter(tx, venueID, kind, +1)

		case err != nil:
			return err

		case vote.Kind == kind:
			// Repeated identical vote is a no-op.
			return nil

		default:
			if err := tx.Model(&vote).UpdateColumn("kind", kind).Error; err != nil {
				return err
			}
			if err := bumpCounter(tx, venueID, kind.Opposite(), -1); err != nil {
				return err
			}
			return bumpCounter(tx, venueID, kind, +1)
		}
	})
}

func bumpCounter(tx *gorm.DB, venueID uuid.UUID, kind db_models.VoteKind, delta int) error {
	column := "upvotes"
	if kind == db_models.VoteKindDown {
		column = "downvotes"
	}
	result := tx.Model(&db_models.Venue{}).
		Where("id = ?", venueID).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
