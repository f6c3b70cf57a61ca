// Package places is a thin client for the Places API v1 used by the
// google_business_profiles strategy.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// Client performs place search and detail lookups.
type Client interface {
	TextSearch(ctx context.Context, query string, limit int) ([]Place, error)
	Details(ctx context.Context, placeID string) (*PlaceDetails, error)
}

// Place is one place summary returned by text search.
type Place struct {
	ID              string      `json:"id"`
	DisplayName     DisplayName `json:"displayName"`
	PrimaryType     string      `json:"primaryType"`
	Rating          float64     `json:"rating"`
	UserRatingCount int         `json:"userRatingCount"`
	FormattedAddr   string      `json:"formattedAddress"`
	Website         string      `json:"websiteUri"`
	Phone           string      `json:"internationalPhoneNumber"`
	Location        LatLng      `json:"location"`
	OpeningHours    Hours       `json:"regularOpeningHours"`
}

// DisplayName holds the place's display name.
type DisplayName struct {
	Text string `json:"text"`
}

// LatLng is a coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Hours carries the weekday descriptions for a place.
type Hours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// PlaceDetails is the detail/review payload for one place.
type PlaceDetails struct {
	ID      string   `json:"id"`
	Reviews []Review `json:"reviews"`
}

// Review is one user review.
type Review struct {
	Rating        int        `json:"rating"`
	Text          ReviewText `json:"text"`
	OwnerResponse *OwnerResp `json:"originalOwnerResponse,omitempty"`
}

// ReviewText holds the review body.
type ReviewText struct {
	Text string `json:"text"`
}

// OwnerResp marks an owner reply on a review.
type OwnerResp struct {
	Text string `json:"text"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(base string) Option {
	return func(c *httpClient) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textSearchRequest struct {
	TextQuery string `json:"textQuery"`
	PageSize  int    `json:"pageSize,omitempty"`
}

type textSearchResponse struct {
	Places []Place `json:"places"`
}

const searchFieldMask = "places.id,places.displayName,places.primaryType,places.rating," +
	"places.userRatingCount,places.formattedAddress,places.websiteUri," +
	"places.internationalPhoneNumber,places.location,places.regularOpeningHours"

// TextSearch runs a place text search bounded by limit.
func (c *httpClient) TextSearch(ctx context.Context, query string, limit int) ([]Place, error) {
	body, err := json.Marshal(textSearchRequest{TextQuery: query, PageSize: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	var payload textSearchResponse
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("text search %q: %w", query, err)
	}
	return payload.Places, nil
}

// Details fetches reviews for one place.
func (c *httpClient) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/"+placeID, nil)
	if err != nil {
		return nil, fmt.Errorf("build details request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", "id,reviews")

	var payload PlaceDetails
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("place details %s: %w", placeID, err)
	}
	return &payload, nil
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("places API HTTP %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ Client = (*httpClient)(nil)
