// Command seedgen asks the AI collaborator for details of each "Name:Location"
// argument and prints a JSON catalog usable as SEED_FILE.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"uncharted_escape/internal/adapters/gemini"
	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/app"
	"uncharted_escape/internal/domain"
	"uncharted_escape/internal/shared"
)

type target struct{ name, location string }

func parseTargets(args []string) ([]target, []string) {
	var (
		out []target
		bad []string
	)
	for _, a := range args {
		name, loc, ok := strings.Cut(a, ":")
		name, loc = strings.TrimSpace(name), strings.TrimSpace(loc)
		if !ok || name == "" || loc == "" {
			bad = append(bad, a)
			continue
		}
		out = append(out, target{name: name, location: loc})
	}
	return out, bad
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// stdout carries the catalog, so logs go to stderr
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv, cfg.LogFile)

	targets, bad := parseTargets(os.Args[1:])
	for _, a := range bad {
		log.Warn().Str("arg", a).Msg("skipping argument, want Name:Location")
	}
	if len(targets) == 0 {
		log.Fatal().Msg("usage: seedgen Name:Location [Name:Location ...]")
	}

	client := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.GeminiModel, cfg.GeminiRPS)
	if !client.HasKey() {
		log.Fatal().Msg("GEMINI_API_KEY is required")
	}

	workers := cfg.SeedgenWorkers
	if workers <= 0 {
		workers = 1
	}
	log.Info().Int("targets", len(targets)).Int("workers", workers).Msg("seedgen starting")

	results := make([]*domain.Destination, len(targets))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, t := range targets {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("interrupted")
			break
		}

		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()
			defer sem.Release(1)

			g, err := client.GenerateDestinationDetails(ctx, t.name)
			if err != nil {
				log.Warn().Str("name", t.name).Err(err).Msg("generate failed")
				return
			}
			d := app.ComposeDestination(strconv.Itoa(i+1), t.name, t.location, g, app.PlaceholderImage())
			results[i] = &d
			log.Info().Str("name", t.name).Float64("price", g.PriceEstimate).Msg("generate ok")
		}(i, t)
	}
	wg.Wait()

	catalog := make([]domain.Destination, 0, len(results))
	for _, d := range results {
		if d != nil {
			catalog = append(catalog, *d)
		}
	}
	if len(catalog) == 0 {
		log.Fatal().Msg("no destinations generated")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		log.Fatal().Err(err).Msg("write catalog failed")
	}
	log.Info().Int("generated", len(catalog)).Int("requested", len(targets)).Msg("seedgen completed")
}
