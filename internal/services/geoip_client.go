package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"nearby/pkg/config"
)

// LocationResolver infers an approximate position from a client
// network address. Used only as a fallback when the request carries no
// explicit coordinates.
type LocationResolver interface {
	ResolveIP(ctx context.Context, ip string) (lat, lon float64, err error)
}

// IPAPIClient resolves positions through the ip-api.com JSON endpoint.
type IPAPIClient struct {
	HTTP *http.Client
}

func NewIPAPIClient(cfg *config.Config) *IPAPIClient {
	return &IPAPIClient{
		HTTP: &http.Client{Timeout: cfg.ProviderTimeout},
	}
}

func (c *IPAPIClient) ResolveIP(ctx context.Context, ip string) (float64, float64, error) {
	u := url.URL{
		Scheme:   "http",
		Host:     "ip-api.com",
		Path:     "/json/" + ip,
		RawQuery: "fields=status,lat,lon",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geoip http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, 0, fmt.Errorf("geoip bad status: %s", resp.Status)
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("geoip decode: %w", err)
	}
	if payload.Status != "success" {
		return 0, 0, fmt.Errorf("geoip lookup failed for %q", ip)
	}
	return payload.Lat, payload.Lon, nil
}
