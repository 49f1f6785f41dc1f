package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"celebrity-trends/internal/collector/config"
	"celebrity-trends/internal/collector/dto"
	"celebrity-trends/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// EntityRecognizer extracts the people mentioned in a normalized article body.
// Only multi-word mentions are returned; single tokens are overwhelmingly
// common nouns mistagged as names.
type EntityRecognizer interface {
	ExtractPeople(ctx context.Context, text string) ([]string, error)
}

// geminiEntityRepository is an EntityRecognizer backed by the Google Gemini API.
type geminiEntityRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiEntityRepository creates a Gemini-backed entity recognizer.
func NewGeminiEntityRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (EntityRecognizer, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &geminiEntityRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// ExtractPeople runs entity recognition over the body text and returns the
// deduplicated multi-word person mentions.
func (r *geminiEntityRepository) ExtractPeople(ctx context.Context, text string) ([]string, error) {
	prompt := BuildExtractPeoplePrompt(text)

	geminiResp, err := r.executeGeminiRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	names, err := parsePeopleResponse(geminiResp)
	if err != nil {
		return nil, err
	}

	return filterPersonMentions(names), nil
}

func (r *geminiEntityRepository) executeGeminiRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}
	r.logger.Debug("Gemini token count", logger.IntField("total_tokens", int(tokenResp.TotalTokens)))

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return &geminiResp, nil
}

func parsePeopleResponse(resp *dto.GeminiAPIResponse) ([]string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	rawJSON := resp.Candidates[0].Content.Parts[0].Text
	rawJSON = strings.Trim(rawJSON, "`json\n`")

	var names []string
	if err := json.Unmarshal([]byte(rawJSON), &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal person names from Gemini response: %w", err)
	}
	return names, nil
}

// filterPersonMentions drops single-word mentions and duplicates, keeping
// first-seen order.
func filterPersonMentions(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if len(strings.Fields(name)) < 2 {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
