package entity

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks a scrape job through its lifecycle.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ScrapeType identifies what a job should extract from its target.
type ScrapeType string

const (
	ScrapeTypeEmails                 ScrapeType = "emails"
	ScrapeTypePhoneNumbers           ScrapeType = "phone_numbers"
	ScrapeTypeTextContent            ScrapeType = "text_content"
	ScrapeTypeTables                 ScrapeType = "tables"
	ScrapeTypeCompleteBusinessData   ScrapeType = "complete_business_data"
	ScrapeTypeBulkBusinessSearch     ScrapeType = "bulk_business_search"
	ScrapeTypeGoogleBusinessProfiles ScrapeType = "google_business_profiles"
)

// Strategy is the extraction code path resolved once at job intake.
type Strategy int

const (
	StrategySinglePage Strategy = iota
	StrategyBulkSearch
	StrategyMapsProfile
)

// Job is one unit of scraping work. Created externally in pending state;
// mutated exclusively by the job orchestrator.
type Job struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	Target        string           `json:"target"`
	ScrapeType    ScrapeType       `json:"scrape_type"`
	Status        JobStatus        `json:"status"`
	TargetCountry *string          `json:"target_country,omitempty"`
	TargetState   *string          `json:"target_state,omitempty"`
	SearchLimit   int              `json:"search_limit"`
	Results       []BusinessRecord `json:"results"`
	ResultsCount  int              `json:"results_count"`
	FieldsCount   int              `json:"fields_count"`
	ErrorMessage  *string          `json:"error_message,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TargetIsURL reports whether the job target parses as an absolute URL.
// Search-driven strategies are selected by URL-unparseability, not by a
// dedicated field.
func (j *Job) TargetIsURL() bool {
	target := strings.TrimSpace(j.Target)
	if target == "" {
		return false
	}
	if !strings.Contains(target, "://") {
		if strings.Contains(target, " ") || !strings.Contains(target, ".") {
			return false
		}
		target = "https://" + target
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ResolveStrategy maps scrape type and target shape onto one of the three
// extraction code paths.
func (j *Job) ResolveStrategy() Strategy {
	switch j.ScrapeType {
	case ScrapeTypeGoogleBusinessProfiles:
		return StrategyMapsProfile
	case ScrapeTypeBulkBusinessSearch:
		return StrategyBulkSearch
	case ScrapeTypeCompleteBusinessData:
		if !j.TargetIsURL() {
			return StrategyBulkSearch
		}
		return StrategySinglePage
	default:
		return StrategySinglePage
	}
}
