package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/domain"
)

const DefaultURL = "https://formspree.io/f/xwpgnjvk"

// Client forwards booking submissions to a form relay. It never retries: the
// relay offers no idempotency, so a repeated POST could land twice.
type Client struct {
	url string
	hc  *http.Client
}

func New(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{url: url, hc: &http.Client{Timeout: 20 * time.Second}}
}

// Submit succeeds on any 2xx. Other statuses wrap domain.ErrRelayRejected;
// transport failures are returned as is.
func (c *Client) Submit(ctx context.Context, s domain.RelaySubmission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "uncharted-escape/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("relay", "submit", 0, time.Since(start))
		log.Error().Err(err).Str("err_type", observability.LabelErr(err)).Str("booking_id", s.BookingID).Msg("relay unreachable")
		return fmt.Errorf("relay submit: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("relay", "submit", resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%w: status %d: %s", domain.ErrRelayRejected, resp.StatusCode, strings.TrimSpace(string(b)))
}
