package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/domain"
)

var ErrSessionStore = errors.New("session store")

// User-visible alert texts.
const (
	AlertBookingRejected    = "There was an issue submitting your booking. Please try again."
	AlertBookingUnreachable = "Failed to connect to booking server."
	AlertDestinationAdded   = "Destination added successfully with AI-generated content!"
	AlertGenerationFailed   = "Failed to generate destination details. Please try again or check API Key."
	LoginErrorMessage       = "Invalid credentials. Try admin@uncharted.com / admin"
)

// AlertError carries the blocking message shown to the user for a failed external call.
type AlertError struct {
	Alert string
	Err   error
}

func (e *AlertError) Error() string { return e.Alert + ": " + e.Err.Error() }
func (e *AlertError) Unwrap() error { return e.Err }

type Service struct {
	sessions   *Sessions
	ai         domain.Generator
	relay      domain.BookingRelay
	cache      domain.Cache
	suggestTTL time.Duration
	newID      func() string
}

func NewService(sessions *Sessions, ai domain.Generator, relay domain.BookingRelay, cache domain.Cache, suggestTTL time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		ai:         ai,
		relay:      relay,
		cache:      cache,
		suggestTTL: suggestTTL,
		newID:      uuid.NewString,
	}
}

// update runs fn against the session and renders the saved state. The admin
// guard is applied to every result, so any transition into the admin panel by
// a non-admin lands on HOME before the screen is produced.
func (s *Service) update(ctx context.Context, sid string, fn func(domain.State) (domain.State, error)) (Screen, error) {
	var redirected bool
	st, err := s.sessions.Update(ctx, sid, func(st domain.State) (domain.State, error) {
		next, ferr := fn(st)
		next, redirected = GuardAdmin(next)
		return next, ferr
	})
	if errors.Is(err, ErrSessionStore) {
		return Screen{}, err
	}
	sc := Render(st)
	sc.Redirected = redirected
	return sc, err
}

// settle writes the outcome of an external call. It runs detached from the
// caller and retries a failed store write once, since fn also clears the
// in-flight flag set before the call.
func (s *Service) settle(ctx context.Context, sid, op string, fn func(domain.State) (domain.State, error)) (Screen, error) {
	ctx = context.WithoutCancel(ctx)
	sc, err := s.update(ctx, sid, fn)
	if !errors.Is(err, ErrSessionStore) {
		return sc, err
	}
	log.Warn().Err(err).Str("op", op).Msg("settle write failed, retrying")
	sc, err = s.update(ctx, sid, fn)
	if errors.Is(err, ErrSessionStore) {
		log.Error().Err(err).Str("op", op).Msg("settle write failed twice, session stays busy until it expires")
	}
	return sc, err
}

// Screen renders the current view.
func (s *Service) Screen(ctx context.Context, sid string) (Screen, error) {
	return s.update(ctx, sid, func(st domain.State) (domain.State, error) { return st, nil })
}

// Reset forgets the session and renders the fresh state it starts over with.
func (s *Service) Reset(ctx context.Context, sid string) (Screen, error) {
	if err := s.sessions.Drop(ctx, sid); err != nil {
		return Screen{}, err
	}
	return s.Screen(ctx, sid)
}

func (s *Service) State(ctx context.Context, sid string) (domain.State, error) {
	return s.sessions.Get(ctx, sid)
}

func (s *Service) Navigate(ctx context.Context, sid string, kind domain.ViewKind) (Screen, error) {
	return s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		return Navigate(st, kind)
	})
}

func (s *Service) SelectDestination(ctx context.Context, sid, id string) (Screen, error) {
	return s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		return ShowDestination(st, id)
	})
}

func (s *Service) Destinations(ctx context.Context, sid string) ([]Card, error) {
	st, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	return Cards(st.Destinations), nil
}

func requireAdmin(st domain.State) error {
	if !st.Principal.IsAdmin() {
		return fmt.Errorf("admin role required: %w", domain.ErrForbidden)
	}
	return nil
}
