// Package ai wraps the Anthropic structured-completion call that produces a
// best-effort business profile from page text. Every failure mode degrades to
// an empty profile; callers must never treat AI absence as fatal.
package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 2048
	maxInputChars    = 12000
)

const systemPrompt = `You extract business data from web page text. Respond with a single JSON object using exactly these keys:
business_name, address, phone, email_address, website, social_links (object keyed by facebook/instagram/linkedin/twitter/youtube/tiktok/pinterest/yelp), hours_of_operation, map_embed_url, map_place_id, latitude, longitude, services, about, contact_names (array of strings), member_businesses (array of {name, website, phone}).
Use empty strings, empty objects or empty arrays for anything not present. Respond with JSON only, no prose.`

// MemberProfile is one directory-listed member business in an AI result.
type MemberProfile struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Phone   string `json:"phone"`
}

// BusinessProfile is the structured output contract for one extraction call.
type BusinessProfile struct {
	BusinessName string            `json:"business_name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email_address"`
	Website      string            `json:"website"`
	Socials      map[string]string `json:"social_links"`
	Hours        string            `json:"hours_of_operation"`
	MapEmbedURL  string            `json:"map_embed_url"`
	MapPlaceID   string            `json:"map_place_id"`
	Latitude     string            `json:"latitude"`
	Longitude    string            `json:"longitude"`
	Services     string            `json:"services"`
	About        string            `json:"about"`
	ContactNames []string          `json:"contact_names"`
	Members      []MemberProfile   `json:"member_businesses"`
}

// IsEmpty reports whether the profile carries no identifying signal. A
// non-empty business name is the principal quality marker surfaced to
// operators.
func (p BusinessProfile) IsEmpty() bool {
	return p.BusinessName == ""
}

type messagesAPI interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Extractor performs single-shot structured extraction calls.
type Extractor struct {
	messages messagesAPI
	model    anthropic.Model
	logger   *zap.Logger
}

// Option configures the extractor.
type Option func(*Extractor)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(e *Extractor) {
		if model != "" {
			e.model = anthropic.Model(model)
		}
	}
}

func withMessagesAPI(api messagesAPI) Option {
	return func(e *Extractor) {
		e.messages = api
	}
}

// NewExtractor builds an extractor backed by the Anthropic API.
func NewExtractor(apiKey string, logger *zap.Logger, opts ...Option) *Extractor {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	e := &Extractor{
		messages: &client.Messages,
		model:    defaultModel,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Extract sends truncated page text to the completion service and parses the
// structured reply. Any transport or parse failure returns an empty profile.
func (e *Extractor) Extract(ctx context.Context, pageText string) BusinessProfile {
	text := strings.TrimSpace(pageText)
	if text == "" {
		return BusinessProfile{}
	}
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	msg, err := e.messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: defaultMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		e.logger.Warn("ai extraction call failed", zap.Error(err))
		return BusinessProfile{}
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	profile, err := parseProfile(reply.String())
	if err != nil {
		e.logger.Warn("ai extraction returned unparseable payload", zap.Error(err))
		return BusinessProfile{}
	}
	return profile
}

// parseProfile tolerates markdown fences and leading prose around the JSON
// object.
func parseProfile(reply string) (BusinessProfile, error) {
	reply = strings.TrimSpace(reply)
	if start := strings.Index(reply, "{"); start >= 0 {
		if end := strings.LastIndex(reply, "}"); end > start {
			reply = reply[start : end+1]
		}
	}
	var profile BusinessProfile
	if err := json.Unmarshal([]byte(reply), &profile); err != nil {
		return BusinessProfile{}, err
	}
	return profile, nil
}
