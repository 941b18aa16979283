// Package citysearch provides debounced city autocomplete backed by OpenStreetMap Nominatim.
package citysearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultCountry restricts results to Italy.
	DefaultCountry = "it"
	// DefaultLimit caps the number of suggestions.
	DefaultLimit = 5

	unknownRegion = "Unknown"
	userAgent     = "energypulse-cli/1.0"
)

// Address holds the parts of a Nominatim address the form uses.
type Address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
}

// Place is one Nominatim search hit.
type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     Address `json:"address"`
}

// City returns the most specific settlement name, falling back to the first part
// of the display name.
func (p Place) City() string {
	for _, v := range []string{p.Address.City, p.Address.Town, p.Address.Village} {
		if v != "" {
			return v
		}
	}
	first, _, _ := strings.Cut(p.DisplayName, ",")
	return strings.TrimSpace(first)
}

// Region returns the state or "Unknown".
func (p Place) Region() string {
	if p.Address.State == "" {
		return unknownRegion
	}
	return p.Address.State
}

// Config configures a Nominatim client.
type Config struct {
	BaseURL    string
	Country    string
	Limit      int
	HTTPClient HTTPDoer
}

// Nominatim is a Searcher over the Nominatim search endpoint. Requests are limited
// to one per second as the public usage policy requires.
type Nominatim struct {
	baseURL string
	country string
	limit   int
	http    HTTPDoer
	limiter ratelimit.Limiter
	metrics Metrics
	logger  *zap.Logger
}

// NewNominatim constructs a Nominatim client.
func NewNominatim(cfg Config, metrics Metrics, logger *zap.Logger) (*Nominatim, error) {
	if metrics == nil {
		return nil, errors.New("nominatim metrics is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse nominatim url: %w", err)
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Nominatim{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		country: cfg.Country,
		limit:   cfg.Limit,
		http:    cfg.HTTPClient,
		limiter: ratelimit.New(1),
		metrics: metrics,
		logger:  logger.Named("nominatim"),
	}, nil
}

// Search returns up to the configured number of places matching query.
func (n *Nominatim) Search(ctx context.Context, query string) (places []Place, err error) {
	started := time.Now()
	defer func() {
		n.metrics.Observe("nominatim.search", err, started)
	}()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("countrycodes", n.country)
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(n.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build city search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	n.limiter.Take()
	resp, err := n.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("city search: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("city search: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode city search: %w", err)
	}
	if len(places) > n.limit {
		places = places[:n.limit]
	}
	n.logger.Debug("city search", zap.String("query", query), zap.Int("results", len(places)))
	return places, nil
}
