package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTextSearchSendsQueryAndFieldMask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places:searchText" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Goog-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		if got := r.Header.Get("X-Goog-FieldMask"); got == "" {
			t.Error("missing field mask header")
		}
		var req textSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TextQuery != "plumbers in Newark NJ" || req.PageSize != 10 {
			t.Errorf("unexpected request: %#v", req)
		}
		json.NewEncoder(w).Encode(textSearchResponse{Places: []Place{
			{ID: "p1", DisplayName: DisplayName{Text: "Newark Plumbing"}, Rating: 4.6, UserRatingCount: 120},
		}})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.TextSearch(context.Background(), "plumbers in Newark NJ", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].DisplayName.Text != "Newark Plumbing" {
		t.Fatalf("unexpected places: %#v", got)
	}
}

func TestDetailsDecodesReviews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/p1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(PlaceDetails{
			ID: "p1",
			Reviews: []Review{
				{Rating: 5, Text: ReviewText{Text: "great service"}},
				{Rating: 2, Text: ReviewText{Text: "slow"}, OwnerResponse: &OwnerResp{Text: "sorry"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := c.Details(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Reviews) != 2 || got.Reviews[1].OwnerResponse == nil {
		t.Fatalf("unexpected details: %#v", got)
	}
}

func TestTextSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := c.TextSearch(context.Background(), "x", 5); err == nil {
		t.Fatal("expected error")
	}
}
