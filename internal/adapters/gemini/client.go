// internal/adapters/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/domain"
)

const (
	DefaultBase  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel = "gemini-2.5-flash"
)

type Client struct {
	base  string
	model string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
}

// New builds a client. An empty key is allowed: every call then fails with
// domain.ErrNoCredential without touching the network.
func New(base, key, model string, rps int) *Client {
	if base == "" {
		base = DefaultBase
	}
	if model == "" {
		model = DefaultModel
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		hc:    &http.Client{Timeout: 60 * time.Second},
		key:   key,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) HasKey() bool { return c.key != "" }

// ---- Public API ----

func (c *Client) GenerateDestinationDetails(ctx context.Context, name string) (domain.GeneratedDetails, error) {
	prompt := fmt.Sprintf(`Create a travel package for a trip to %s.
Provide a catchy marketing description (max 50 words), a suggested price in USD for a standard 5-day trip, and a 3-day sample itinerary.`, name)

	text, err := c.generate(ctx, "details", prompt, detailsSchema)
	if err != nil {
		return domain.GeneratedDetails{}, err
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.GeneratedDetails{}, fmt.Errorf("%w: decode details: %v", domain.ErrMalformed, err)
	}
	return mapDetails(payload)
}

func (c *Client) SuggestDestinations(ctx context.Context, query string) ([]string, error) {
	prompt := fmt.Sprintf(`Suggest 3 top travel destinations based on this user preference: %q. Return only a JSON array of strings containing the names of the places.`, query)

	text, err := c.generate(ctx, "suggestions", prompt, suggestionsSchema)
	if err != nil {
		return nil, err
	}
	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode suggestions: %v", domain.ErrMalformed, err)
	}
	return stringsOf(raw), nil
}

func (c *Client) TravelAdvice(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful travel agent for "Uncharted Escape". Answer this user question briefly (max 100 words): %s`, question)
	return c.generate(ctx, "advice", prompt, nil)
}

// ---- Wire types ----

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
	ResponseSchema   any    `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	var b strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

var detailsSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"description":   map[string]any{"type": "STRING"},
		"priceEstimate": map[string]any{"type": "NUMBER"},
		"itinerary": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"day":        map[string]any{"type": "INTEGER"},
					"title":      map[string]any{"type": "STRING"},
					"activities": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
				},
			},
		},
	},
}

var suggestionsSchema = map[string]any{
	"type":  "ARRAY",
	"items": map[string]any{"type": "STRING"},
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("gemini: unauthorized")
	ErrEmpty        = fmt.Errorf("gemini: %w", domain.ErrEmptyReply)
)

// generate sends one prompt; a non-nil schema switches the model into JSON mode.
func (c *Client) generate(ctx context.Context, endpoint, prompt string, schema any) (string, error) {
	if c.key == "" {
		return "", domain.ErrNoCredential
	}
	req := generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}}
	if schema != nil {
		req.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json", ResponseSchema: schema}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var out generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent", c.base, c.model)
	if err := c.post(ctx, endpoint, url, body, &out); err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.text())
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// post sends body to url and decodes a 200 reply into out. 429 and 5xx are
// retried up to three times after Retry-After or a jittered backoff.
func (c *Client) post(ctx context.Context, endpoint, url string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("x-goog-api-key", c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "uncharted-escape/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("gemini", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("gemini", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
			}
			return nil

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx reports false if ctx ends before d elapses.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// retryAfter accepts delta-seconds or an HTTP date; zero means "not given".
func retryAfter(resp *http.Response) time.Duration {
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	switch secs, err := strconv.Atoi(v); {
	case v == "":
		return 0
	case err == nil:
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0)
	}
	return 0
}

// backoff doubles from 250ms and adds up to half of that again.
func backoff(attempt int) time.Duration {
	d := 250 * time.Millisecond << attempt
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return d
	}
	return d + time.Duration(int64(d)*int64(b[0])/510)
}
