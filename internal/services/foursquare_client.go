package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nearby/internal/models/db_models"
	"nearby/pkg/config"
)

// PlacesGateway is the external venue-search provider as the engine
// sees it: a position and category in, a bounded list of normalized
// venues out. Everything provider-specific stays behind this interface.
type PlacesGateway interface {
	FetchVenues(ctx context.Context, lat, lon float64, venueType db_models.VenueType, modifier string) ([]db_models.Venue, error)
}

// Foursquare place-search category ids.
const (
	fsqCategoryCoffee = "4bf58dd8d48988d1e0931735"
	fsqCategoryBar    = "4bf58dd8d48988d116941735"
)

type FoursquareClient struct {
	HTTP         *http.Client
	APIKey       string
	RadiusMeters int
	ResultLimit  int
}

func NewFoursquareClient(cfg *config.Config) *FoursquareClient {
	return &FoursquareClient{
		HTTP:         &http.Client{Timeout: cfg.ProviderTimeout},
		APIKey:       cfg.FoursquareAPIKey,
		RadiusMeters: cfg.RadiusMeters,
		ResultLimit:  cfg.ResultLimit,
	}
}

func categoryFor(venueType db_models.VenueType) (string, error) {
	switch venueType {
	case db_models.VenueTypeCoffee:
		return fsqCategoryCoffee, nil
	case db_models.VenueTypeDrinks:
		return fsqCategoryBar, nil
	default:
		return "", fmt.Errorf("no provider category for venue type %q", venueType)
	}
}

type fsqPlace struct {
	FsqID       string `json:"fsq_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Geocodes    struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Location json.RawMessage `json:"location"`
	Hours    struct {
		Regular []struct {
			Day   int    `json:"day"`
			Open  string `json:"open"`
			Close string `json:"close"`
		} `json:"regular"`
	} `json:"hours"`
	Features json.RawMessage `json:"features"`
	Menu     json.RawMessage `json:"menu"`
	Photos   json.RawMessage `json:"photos"`
}

func (c *FoursquareClient) FetchVenues(ctx context.Context, lat, lon float64, venueType db_models.VenueType, modifier string) ([]db_models.Venue, error) {
	category, err := categoryFor(venueType)
	if err != nil {
		return nil, err
	}

	u := url.URL{
		Scheme: "https",
		Host:   "api.foursquare.com",
		Path:   "/v3/places/search",
	}
	q := url.Values{}
	q.Set("ll", fmt.Sprintf("%f,%f", lat, lon))
	q.Set("radius", strconv.Itoa(c.RadiusMeters))
	q.Set("categories", category)
	q.Set("exclude_all_chains", "true")
	q.Set("open_now", "true")
	q.Set("limit", strconv.Itoa(c.ResultLimit))
	if modifier != "" {
		q.Set("query", modifier)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("foursquare http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("foursquare bad status: %s", resp.Status)
	}

	var payload struct {
		Results []fsqPlace `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("foursquare decode: %w", err)
	}

	venues := make([]db_models.Venue, 0, len(payload.Results))
	for _, place := range payload.Results {
		venue, err := normalizeVenue(place, venueType, modifier)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, nil
}

// normalizeVenue turns a raw provider result into a fully-populated
// Venue before it can reach the merge or the store. A result without a
// usable position cannot be cached and fails the fetch.
func normalizeVenue(place fsqPlace, venueType db_models.VenueType, modifier string) (db_models.Venue, error) {
	lat := place.Geocodes.Main.Latitude
	lon := place.Geocodes.Main.Longitude
	if lat == 0 && lon == 0 {
		return db_models.Venue{}, fmt.Errorf("provider venue %q has no position", place.Name)
	}

	hours := make(db_models.OpeningHours, 0, len(place.Hours.Regular))
	for _, h := range place.Hours.Regular {
		hours = append(hours, db_models.OpeningInterval{
			// Provider days run 1=Monday..7=Sunday; time.Weekday is Sunday=0.
			Day:   time.Weekday(h.Day % 7),
			Open:  h.Open,
			Close: h.Close,
		})
	}

	categories := make([]string, 0, len(place.Categories))
	for _, cat := range place.Categories {
		categories = append(categories, cat.Name)
	}

	var modPtr *string
	if modifier != "" {
		m := modifier
		modPtr = &m
	}

	return db_models.Venue{
		Name:        place.Name,
		Latitude:    lat,
		Longitude:   lon,
		ExternalRef: place.FsqID,
		VenueType:   venueType,
		Modifier:    modPtr,
		Description: place.Description,
		Categories:  categories,
		Location:    db_models.Payload(place.Location),
		Hours:       hours,
		Attributes:  db_models.Payload(place.Features),
		Menu:        db_models.Payload(place.Menu),
		Photos:      db_models.Payload(place.Photos),
		FetchedAt:   time.Now().Unix(),
	}, nil
}
