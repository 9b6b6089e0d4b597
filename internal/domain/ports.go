package domain

import "context"

// Generator is the generative AI collaborator.
type Generator interface {
	GenerateDestinationDetails(ctx context.Context, name string) (GeneratedDetails, error)
	SuggestDestinations(ctx context.Context, query string) ([]string, error)
	TravelAdvice(ctx context.Context, question string) (string, error)
}

type BookingRelay interface {
	Submit(ctx context.Context, s RelaySubmission) error
}

type SessionStore interface {
	// Load reports ok=false when the session is unknown or expired.
	Load(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, id string, s State) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
