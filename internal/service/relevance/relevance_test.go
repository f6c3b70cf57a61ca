package relevance

import (
	"testing"

	"github.com/octobees/leads-pipeline/internal/entity"
)

func TestAllowedBlocksNonBusinessDomains(t *testing.T) {
	blocked := []string{
		"https://reddit.com/r/smallbusiness/comments/abc",
		"https://www.reddit.com/r/plumbing",
		"https://en.wikipedia.org/wiki/Plumbing",
		"https://www.indeed.com/jobs?q=plumber",
	}
	for _, u := range blocked {
		if Allowed(u) {
			t.Errorf("Allowed(%q) = true, want blocked", u)
		}
	}
}

func TestAllowedBlocksEditorialPaths(t *testing.T) {
	blocked := []string{
		"https://homefix.com/blog/winter-pipes",
		"https://localnews.com/articles/water-main-break",
		"https://ranker.example.net/top-10-plumbers-newark",
	}
	for _, u := range blocked {
		if Allowed(u) {
			t.Errorf("Allowed(%q) = true, want blocked", u)
		}
	}
}

func TestAllowedPassesBusinessSites(t *testing.T) {
	if !Allowed("https://newarkplumbingpros.com/services") {
		t.Fatal("expected business site to pass")
	}
}

func TestScoreSumsFixedWeights(t *testing.T) {
	record := &entity.BusinessRecord{
		Name:   "Newark Plumbing Pros",
		Phones: []string{"+19735550111"},
		Emails: []string{"info@newarkplumbingpros.com"},
	}
	if got := Score(record); got != 65 {
		t.Fatalf("Score = %d, want 65", got)
	}
	if !Retained(record) {
		t.Fatal("record at 65 should be retained")
	}
}

func TestScoreFullRecordIs100(t *testing.T) {
	record := &entity.BusinessRecord{
		Name:      "Acme",
		Phones:    []string{"+12125550134"},
		Emails:    []string{"a@acme.com"},
		Addresses: []string{"1 Main St, Newark, NJ 07102"},
		Website:   "https://acme.com",
	}
	record.Socials.Set("facebook", "https://facebook.com/acme")
	if got := Score(record); got != 100 {
		t.Fatalf("Score = %d, want 100", got)
	}
}

func TestRetainedDropsLowSignalRecords(t *testing.T) {
	record := &entity.BusinessRecord{Website: "https://acme.com"}
	if Retained(record) {
		t.Fatal("website-only record scores 10, below cutoff")
	}
}

func TestRetainedDropsBlockedSourceRegardlessOfContent(t *testing.T) {
	record := &entity.BusinessRecord{
		Name:      "Great Thread",
		Phones:    []string{"+12125550134"},
		Emails:    []string{"a@b.com"},
		SourceURL: "https://reddit.com/r/smallbusiness/comments/abc",
	}
	if Retained(record) {
		t.Fatal("blocked source must be dropped regardless of score")
	}
}
