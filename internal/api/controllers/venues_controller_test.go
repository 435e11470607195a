package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/pkg/middleware"
	"nearby/pkg/utils"
)

type fakeVenueService struct {
	lastQuery  request_models.VenueQuery
	resolved   []response_models.Venue
	resolveErr error

	voteVenueID string
	voteUserID  string
	voteKind    string
	voteErr     error
}

func (f *fakeVenueService) ResolveVenues(ctx context.Context, query request_models.VenueQuery) ([]response_models.Venue, error) {
	f.lastQuery = query
	return f.resolved, f.resolveErr
}

func (f *fakeVenueService) CastVote(ctx context.Context, venueID, userID, kind string) error {
	f.voteVenueID = venueID
	f.voteUserID = userID
	f.voteKind = kind
	return f.voteErr
}

type fakeResolver struct {
	lat, lon float64
	fail     bool
}

func (f *fakeResolver) ResolveIP(ctx context.Context, ip string) (float64, float64, error) {
	if f.fail {
		return 0, 0, context.DeadlineExceeded
	}
	return f.lat, f.lon, nil
}

func setupRouter(svc *fakeVenueService, resolver *fakeResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewVenuesController(svc)
	r.GET("/v1/venues", middleware.LocationMiddleware(resolver), controller.GetVenues)
	return r
}

func TestGetVenuesExplicitParams(t *testing.T) {
	svc := &fakeVenueService{resolved: []response_models.Venue{}}
	r := setupRouter(svc, &fakeResolver{fail: true})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/venues?latitude=37.7749&longitude=-122.4194&venueType=coffee&modifier=cozy", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.lastQuery.Latitude != 37.7749 || svc.lastQuery.Longitude != -122.4194 {
		t.Errorf("coordinates not forwarded: %+v", svc.lastQuery)
	}
	if svc.lastQuery.VenueType != db_models.VenueTypeCoffee || svc.lastQuery.Modifier != "cozy" {
		t.Errorf("type/modifier not forwarded: %+v", svc.lastQuery)
	}
}

func TestGetVenuesDefaultsTypeByHour(t *testing.T) {
	cases := []struct {
		iso  string
		want db_models.VenueType
	}{
		{"2026-08-25T09:00:00Z", db_models.VenueTypeCoffee},
		{"2026-08-25T16:59:00Z", db_models.VenueTypeCoffee},
		{"2026-08-25T17:00:00Z", db_models.VenueTypeDrinks},
		{"2026-08-25T02:00:00Z", db_models.VenueTypeDrinks},
	}
	for _, tc := range cases {
		svc := &fakeVenueService{}
		r := setupRouter(svc, &fakeResolver{fail: true})

		req := httptest.NewRequest(http.MethodGet,
			"/v1/venues?latitude=37.7749&longitude=-122.4194&isoTime="+tc.iso, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.iso, w.Code)
		}
		if svc.lastQuery.VenueType != tc.want {
			t.Errorf("%s: expected default type %q, got %q", tc.iso, tc.want, svc.lastQuery.VenueType)
		}
		if svc.lastQuery.AsOf.IsZero() {
			t.Errorf("%s: expected as-of forwarded from isoTime", tc.iso)
		}
	}
}

func TestGetVenuesFallsBackToIPLocation(t *testing.T) {
	svc := &fakeVenueService{}
	r := setupRouter(svc, &fakeResolver{lat: 40.7128, lon: -74.006})

	req := httptest.NewRequest(http.MethodGet, "/v1/venues?venueType=drinks", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.lastQuery.Latitude != 40.7128 || svc.lastQuery.Longitude != -74.006 {
		t.Errorf("expected IP-derived position, got %+v", svc.lastQuery)
	}
}

func TestGetVenuesMissingContext(t *testing.T) {
	svc := &fakeVenueService{}
	r := setupRouter(svc, &fakeResolver{fail: true})

	// No coordinates resolvable and no venue type derivable.
	req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetVenuesRejectsBadInput(t *testing.T) {
	svc := &fakeVenueService{}
	r := setupRouter(svc, &fakeResolver{fail: true})

	cases := []string{
		"/v1/venues?latitude=37.7&longitude=-122.4&isoTime=not-a-time",
		"/v1/venues?latitude=north&longitude=-122.4&venueType=coffee",
		"/v1/venues?latitude=37.7&longitude=-122.4&venueType=karaoke",
	}
	for _, path := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestCastVoteRequiresToken(t *testing.T) {
	secret := []byte("test-secret")
	svc := &fakeVenueService{}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewVenuesController(svc)
	r.POST("/v1/venues/:id/votes", middleware.JWTAuthMiddleware(secret), controller.CastVote)

	venueID := "3b9f2a10-6f59-4b1c-9f5e-000000000001"
	body := strings.NewReader(`{"kind":"up"}`)

	// Without a token.
	req := httptest.NewRequest(http.MethodPost, "/v1/venues/"+venueID+"/votes", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// With a token minted for user-42.
	token, err := utils.CreateToken(secret, "user-42")
	if err != nil {
		t.Fatalf("could not mint token: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/v1/venues/"+venueID+"/votes",
		strings.NewReader(`{"kind":"up"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}
	if svc.voteVenueID != venueID || svc.voteUserID != "user-42" || svc.voteKind != "up" {
		t.Errorf("vote not forwarded correctly: %s %s %s", svc.voteVenueID, svc.voteUserID, svc.voteKind)
	}

	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("expected success envelope, got %+v", resp)
	}
}
