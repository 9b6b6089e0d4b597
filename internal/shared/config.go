package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	HTTPTimeout    time.Duration
	GeminiBase     string
	GeminiKey      string
	GeminiModel    string
	GeminiRPS      int
	RelayURL       string
	RedisAddr      string // empty keeps sessions in process memory
	RedisDB        int
	RedisPass      string
	SessionTTL     time.Duration
	SuggestTTL     time.Duration
	AIRateLimit    string // ulule format, e.g. "30-M"
	SeedFile       string
	LogFile        string
	SeedgenWorkers int
}

func Load() Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		HTTPTimeout:    time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 90)) * time.Second,
		GeminiBase:     env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiKey:      env("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:    env("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiRPS:      atoi("GEMINI_RPS", 5),
		RelayURL:       env("RELAY_URL", "https://formspree.io/f/xwpgnjvk"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		SessionTTL:     time.Duration(atoi("SESSION_TTL_SECONDS", 7200)) * time.Second,
		SuggestTTL:     time.Duration(atoi("SUGGEST_CACHE_TTL_SECONDS", 900)) * time.Second,
		AIRateLimit:    env("AI_RATE_LIMIT", "30-M"),
		SeedFile:       env("SEED_FILE", ""),
		LogFile:        env("LOG_FILE", ""),
		SeedgenWorkers: atoi("SEEDGEN_WORKERS", 4),
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; AI features will fall back")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
