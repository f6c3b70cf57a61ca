package extract

import (
	"fmt"
	"strings"
	"testing"
)

func TestWebsitesFiltersNoise(t *testing.T) {
	c := Content{Text: strings.Join([]string{
		"https://partner-site.com/services",
		"https://www.facebook.com/acme",
		"https://cdn.example.io/banner.png",
		"https://images.cloudinary.com/acme/photo",
		"https://somesite.com/asset?w=300&fit=crop",
		"https://root-only.com/",
		"https://supplier.net/catalog",
	}, " ")}
	got := Websites(c)
	want := []string{"https://partner-site.com/services", "https://supplier.net/catalog"}
	if len(got) != len(want) {
		t.Fatalf("unexpected websites: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("websites[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWebsitesCappedAtTen(t *testing.T) {
	var urls []string
	for i := 0; i < 15; i++ {
		urls = append(urls, fmt.Sprintf("https://site%d.com/page", i))
	}
	c := Content{Text: strings.Join(urls, " ")}
	if got := Websites(c); len(got) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(got))
	}
}

func TestWebsitesDeduplicate(t *testing.T) {
	c := Content{Text: "https://acme.com/about https://acme.com/about"}
	if got := Websites(c); len(got) != 1 {
		t.Fatalf("unexpected websites: %#v", got)
	}
}
