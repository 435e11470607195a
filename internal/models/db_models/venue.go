package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type VenueType string

const (
	VenueTypeCoffee VenueType = "coffee"
	VenueTypeDrinks VenueType = "drinks"
)

// ParseVenueType rejects anything outside the closed enumeration, so bad
// values never make it past the input-validation boundary.
func ParseVenueType(s string) (VenueType, error) {
	switch VenueType(s) {
	case VenueTypeCoffee:
		return VenueTypeCoffee, nil
	case VenueTypeDrinks:
		return VenueTypeDrinks, nil
	default:
		return "", fmt.Errorf("unrecognized venue type %q", s)
	}
}

// Payload is an opaque provider blob (location, attributes, menu, photos).
// Stored as jsonb, never interpreted here. A nil payload persists as {}.
type Payload json.RawMessage

func (p Payload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	return string(p), nil
}

func (p *Payload) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		*p = append((*p)[:0], v...)
		return nil
	case string:
		*p = Payload(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Payload", src)
	}
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("{}"), nil
	}
	return p, nil
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[:0], data...)
	return nil
}

// OpeningInterval is one operating window, times in 4-digit "HHMM"
// local-venue time. Day follows time.Weekday (Sunday = 0).
type OpeningInterval struct {
	Day   time.Weekday `json:"day"`
	Open  string       `json:"open"`
	Close string       `json:"close"`
}

type OpeningHours []OpeningInterval

func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		h = OpeningHours{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *OpeningHours) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OpeningHours", src)
	}
	return json.Unmarshal(data, h)
}

// OpenAt reports whether any interval covers the given day and "HHMM"
// time. Bounds are inclusive: a venue closing at 1700 is still open at
// exactly 1700. Zero-padded HHMM strings compare correctly as text.
func (h OpeningHours) OpenAt(day time.Weekday, hhmm string) bool {
	for _, iv := range h {
		if iv.Day == day && iv.Open <= hhmm && hhmm <= iv.Close {
			return true
		}
	}
	return false
}

// Venue is a cached point-of-interest record. The natural key
// (latitude, longitude, name) deduplicates re-fetches; upvotes and
// downvotes are owned by the vote ledger and survive every re-fetch.
type Venue struct {
	BaseModel
	Name        string         `gorm:"not null;uniqueIndex:idx_venues_natural_key" json:"name"`
	Latitude    float64        `gorm:"not null;uniqueIndex:idx_venues_natural_key" json:"latitude"`
	Longitude   float64        `gorm:"not null;uniqueIndex:idx_venues_natural_key" json:"longitude"`
	ExternalRef string         `gorm:"index" json:"external_ref,omitempty"`
	VenueType   VenueType      `gorm:"not null;index" json:"venue_type"`
	Modifier    *string        `json:"modifier,omitempty"`
	Description string         `json:"description"`
	Categories  pq.StringArray `gorm:"type:text[]" json:"categories"`
	Location    Payload        `gorm:"type:jsonb" json:"location"`
	Hours       OpeningHours   `gorm:"type:jsonb" json:"hours"`
	Attributes  Payload        `gorm:"type:jsonb" json:"attributes"`
	Menu        Payload        `gorm:"type:jsonb" json:"menu"`
	Photos      Payload        `gorm:"type:jsonb" json:"photos"`
	Upvotes     int            `gorm:"not null;default:0" json:"upvotes"`
	Downvotes   int            `gorm:"not null;default:0" json:"downvotes"`
	FetchedAt   int64          `gorm:"not null" json:"fetched_at"`

	// Geodesic meters from the query position, populated by QueryNearby only.
	Distance float64 `gorm:"->;-:migration" json:"distance,omitempty"`

	Votes []Vote `json:"-"`
}
