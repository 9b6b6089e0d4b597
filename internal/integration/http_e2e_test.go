//go:build integration || !unit

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"uncharted_escape/internal/adapters/gemini"
	server "uncharted_escape/internal/adapters/http_server"
	"uncharted_escape/internal/adapters/observability"
	redisad "uncharted_escape/internal/adapters/redis"
	"uncharted_escape/internal/adapters/relay"
	"uncharted_escape/internal/app"
	"uncharted_escape/internal/domain"
)

// ---------- fake collaborators ----------

type fakeGemini struct {
	suggestHits atomic.Int32
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GenerationConfig *struct {
			ResponseSchema struct {
				Type string `json:"type"`
			} `json:"responseSchema"`
		} `json:"generationConfig"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	var text string
	switch {
	case req.GenerationConfig == nil:
		text = "Visit Bali between April and October."
	case req.GenerationConfig.ResponseSchema.Type == "ARRAY":
		f.suggestHits.Add(1)
		text = `["Faroe Islands","Lofoten"]`
	default:
		text = `{"description":"Glaciers, geysers and black sand.","priceEstimate":2750,"itinerary":[{"day":1,"title":"Reykjavik","activities":["Hallgrimskirkja"]}]}`
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
	})
}

type fakeRelay struct {
	mu   sync.Mutex
	subs []domain.RelaySubmission
}

func (f *fakeRelay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var s domain.RelaySubmission
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.subs = append(f.subs, s)
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// ---------- helpers ----------

type client struct {
	t    *testing.T
	base string
	hc   *http.Client
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, c.base+path, rd)
	resp, err := c.hc.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func (c *client) screen(method, path string, body any, want int) app.Screen {
	c.t.Helper()
	code, b := c.do(method, path, body)
	if code != want {
		c.t.Fatalf("%s %s: status=%d want %d body=%s", method, path, code, want, b)
	}
	var env struct {
		Screen app.Screen `json:"screen"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		c.t.Fatalf("decode: %v body=%s", err, b)
	}
	return env.Screen
}

// ---------- E2E ----------

func TestE2E_AdminCreatesUserBooks(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	gm := &fakeGemini{}
	gts := httptest.NewServer(gm)
	t.Cleanup(gts.Close)
	rl := &fakeRelay{}
	rts := httptest.NewServer(rl)
	t.Cleanup(rts.Close)

	sessions := app.NewSessions(redisad.NewSessionStore(rdb, time.Hour), nil)
	svc := app.NewService(sessions,
		gemini.New(gts.URL, "test-key", "gemini-test", 100),
		relay.New(rts.URL),
		redisad.NewCache(rdb),
		time.Minute,
	)
	limit, err := server.RateLimit("100-M", rdb)
	if err != nil {
		t.Fatalf("rate limit: %v", err)
	}

	srv := server.New(10 * time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(&server.Handlers{Svc: svc, AILimit: limit})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)

	jar, _ := cookiejar.New(nil)
	c := &client{t: t, base: api.URL, hc: &http.Client{Jar: jar}}

	// admin adds a destination
	sc := c.screen(http.MethodPost, "/v1/login", map[string]string{"email": "admin@uncharted.com", "password": "admin"}, http.StatusOK)
	if sc.View != domain.ViewAdminPanel {
		t.Fatalf("admin landed on %s", sc.View)
	}
	c.screen(http.MethodPost, "/v1/admin/destinations", map[string]string{"name": "Iceland", "location": "Nordic"}, http.StatusOK)

	// same browser, now a regular user
	c.screen(http.MethodPost, "/v1/logout", nil, http.StatusOK)
	sc = c.screen(http.MethodPost, "/v1/login", map[string]string{"email": "sam@example.com", "password": "pw"}, http.StatusOK)
	if sc.Home == nil || len(sc.Home.Cards) != 5 || sc.Home.Cards[0].Name != "Iceland" || sc.Home.Cards[0].Price != "$2,750" {
		t.Fatalf("home cards: %+v", sc.Home)
	}
	newID := sc.Home.Cards[0].ID

	sc = c.screen(http.MethodPost, "/v1/destinations/"+newID+"/select", nil, http.StatusOK)
	if sc.Details == nil || len(sc.Details.Itinerary) != 1 || sc.Details.Highlights[0] != "AI Recommended" {
		t.Fatalf("details: %+v", sc.Details)
	}
	sc = c.screen(http.MethodPost, "/v1/bookings", map[string]any{"date": "2026-07-14", "guests": 2}, http.StatusOK)
	if sc.Details.Confirmation == nil {
		t.Fatalf("expected confirmation")
	}

	rl.mu.Lock()
	if len(rl.subs) != 1 || rl.subs[0].Destination != "Iceland" || rl.subs[0].TotalPrice != 5500 || rl.subs[0].UserEmail != "sam@example.com" {
		t.Fatalf("relay got %+v", rl.subs)
	}
	bookingID := rl.subs[0].BookingID
	rl.mu.Unlock()

	code, ics := c.do(http.MethodGet, "/v1/bookings/"+bookingID+"/calendar.ics", nil)
	if code != http.StatusOK || !strings.Contains(string(ics), "LOCATION:Nordic") {
		t.Fatalf("calendar status=%d body=%s", code, ics)
	}

	// chat and suggestions go through the same Gemini fake
	sc = c.screen(http.MethodPost, "/v1/chat", map[string]string{"text": "When should I visit Bali?"}, http.StatusOK)
	if len(sc.Chat.Turns) != 2 || sc.Chat.Turns[1].Text != "Visit Bali between April and October." {
		t.Fatalf("chat: %+v", sc.Chat.Turns)
	}
	for i := 0; i < 2; i++ {
		code, b := c.do(http.MethodGet, "/v1/suggestions?q=northern+lights", nil)
		if code != http.StatusOK || !strings.Contains(string(b), "Lofoten") {
			t.Fatalf("suggestions status=%d body=%s", code, b)
		}
	}
	if gm.suggestHits.Load() != 1 {
		t.Fatalf("suggestions should be cached, gemini hit %d times", gm.suggestHits.Load())
	}

	// state lives in Redis
	var sessionKeys int
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "session:") {
			sessionKeys++
		}
	}
	if sessionKeys != 1 {
		t.Fatalf("expected one session in redis, keys=%v", mr.Keys())
	}

	code, metrics := c.do(http.MethodGet, "/metrics", nil)
	if code != http.StatusOK || !strings.Contains(string(metrics), `uncharted_bookings_total{outcome="recorded"}`) {
		t.Fatalf("metrics status=%d", code)
	}
}
