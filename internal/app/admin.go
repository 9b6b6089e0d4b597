package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/domain"
)

const (
	generatedDuration = "5 Days"
	generatedFeature  = "AI Recommended"
)

func PlaceholderImage() string {
	return fmt.Sprintf("https://picsum.photos/800/600?random=%d", rand.IntN(1_000_000))
}

// ComposeDestination builds a listing from admin input and AI-generated details.
func ComposeDestination(id, name, location string, g domain.GeneratedDetails, image string) domain.Destination {
	return domain.Destination{
		ID:          id,
		Name:        name,
		Location:    location,
		Description: g.Description,
		Price:       g.PriceEstimate,
		Image:       image,
		Duration:    generatedDuration,
		Rating:      0,
		Features:    []string{generatedFeature},
		Itinerary:   g.Itinerary,
	}
}

func (s *Service) AddDestination(ctx context.Context, sid, name, location string) (Screen, error) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)

	var epoch uint64
	sc, err := s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		if err := requireAdmin(st); err != nil {
			return st, err
		}
		if name == "" || location == "" {
			return st, fmt.Errorf("%w: name and location are required", domain.ErrValidation)
		}
		if st.Admin.Generating {
			return st, domain.ErrBusy
		}
		epoch = st.Epoch
		return BeginGeneration(st), nil
	})
	if err != nil {
		return sc, err
	}

	details, gerr := s.ai.GenerateDestinationDetails(ctx, name)

	var superseded bool
	sc, err = s.settle(ctx, sid, "admin_generation", func(st domain.State) (domain.State, error) {
		if st.Epoch != epoch {
			superseded = true
			return st, nil
		}
		st = EndGeneration(st)
		if gerr != nil {
			return st, nil
		}
		return PrependDestination(st, ComposeDestination(s.newID(), name, location, details, PlaceholderImage())), nil
	})
	if err != nil {
		return sc, err
	}

	switch {
	case superseded:
		observability.ObserveSuperseded("admin_generation")
		log.Info().Str("name", name).Msg("session signed out during generation; result discarded")
		return sc, fmt.Errorf("add destination %q: %w", name, domain.ErrSuperseded)
	case gerr != nil:
		log.Warn().Err(gerr).Str("name", name).Msg("destination generation failed")
		return sc, &AlertError{Alert: AlertGenerationFailed, Err: gerr}
	}
	log.Info().Str("name", name).Str("location", location).Msg("destination added")
	return sc, nil
}
