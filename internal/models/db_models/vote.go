package db_models

import (
	"fmt"

	"github.com/google/uuid"
)

type VoteKind string

const (
	VoteKindUp   VoteKind = "up"
	VoteKindDown VoteKind = "down"
)

func ParseVoteKind(s string) (VoteKind, error) {
	switch VoteKind(s) {
	case VoteKindUp:
		return VoteKindUp, nil
	case VoteKindDown:
		return VoteKindDown, nil
	default:
		return "", fmt.Errorf("unrecognized vote kind %q", s)
	}
}

// Opposite returns the other kind, used when flipping a vote.
func (k VoteKind) Opposite() VoteKind {
	if k == VoteKindUp {
		return VoteKindDown
	}
	return VoteKindUp
}

// Vote is one user's current stance on one venue. The (user, venue)
// pair is unique: a later opposite vote flips this row in place.
type Vote struct {
	BaseModel
	VenueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_venue" json:"venue_id"`
	UserID  string    `gorm:"not null;uniqueIndex:idx_votes_user_venue" json:"user_id"`
	Kind    VoteKind  `gorm:"not null" json:"kind"`

	Venue Venue `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
