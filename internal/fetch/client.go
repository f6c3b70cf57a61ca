// Package fetch is a thin client for the external page-fetch and web-search
// service. The service renders a URL (or runs a query) and hands back text
// content plus raw markup; this pipeline does no fetching of its own.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client defines the fetch-service operations used by the pipeline.
type Client interface {
	Fetch(ctx context.Context, targetURL string, opts ...FetchOption) (*Page, error)
	Search(ctx context.Context, query string, opts ...SearchOption) ([]SearchResult, error)
}

// Page is one rendered page.
type Page struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Markup string `json:"html"`
}

// SearchResult is one search hit with its rendered content.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
	Markup      string `json:"html"`
}

// FetchOption configures a fetch request.
type FetchOption func(*fetchOpts)

type fetchOpts struct {
	country  string
	language string
}

// WithCountry sets a geo hint for page rendering.
func WithCountry(country string) FetchOption {
	return func(o *fetchOpts) {
		o.country = country
	}
}

// WithLanguage sets a language hint for page rendering.
func WithLanguage(language string) FetchOption {
	return func(o *fetchOpts) {
		o.language = language
	}
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	locale string
	limit  int
}

// WithLocale restricts search results to a locale.
func WithLocale(locale string) SearchOption {
	return func(o *searchOpts) {
		o.locale = locale
	}
}

// WithLimit bounds the number of search results.
func WithLimit(limit int) SearchOption {
	return func(o *searchOpts) {
		if limit > 0 {
			o.limit = limit
		}
	}
}

// Option configures the HTTP client.
type Option func(*httpClient)

// WithBaseURL overrides the default service URL.
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

// NewClient builds a fetch-service client.
func NewClient(baseURL, apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fetchResponse struct {
	Data Page `json:"data"`
}

type searchResponse struct {
	Data []SearchResult `json:"data"`
}

// Fetch renders one page and returns its text and markup.
func (c *httpClient) Fetch(ctx context.Context, targetURL string, opts ...FetchOption) (*Page, error) {
	options := fetchOpts{}
	for _, opt := range opts {
		opt(&options)
	}

	query := url.Values{"url": {targetURL}}
	if options.country != "" {
		query.Set("country", options.country)
	}
	if options.language != "" {
		query.Set("language", options.language)
	}

	var payload fetchResponse
	if err := c.get(ctx, "/fetch", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", targetURL, err)
	}
	return &payload.Data, nil
}

// Search runs a free-text query and returns rendered results.
func (c *httpClient) Search(ctx context.Context, queryText string, opts ...SearchOption) ([]SearchResult, error) {
	options := searchOpts{}
	for _, opt := range opts {
		opt(&options)
	}

	query := url.Values{"q": {queryText}}
	if options.locale != "" {
		query.Set("locale", options.locale)
	}
	if options.limit > 0 {
		query.Set("limit", strconv.Itoa(options.limit))
	}

	var payload searchResponse
	if err := c.get(ctx, "/search", query, &payload); err != nil {
		return nil, fmt.Errorf("search %q: %w", queryText, err)
	}
	return payload.Data, nil
}

func (c *httpClient) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("service returned HTTP %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ Client = (*httpClient)(nil)
