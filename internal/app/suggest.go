package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/domain"
)

// Suggest returns place names for a free-text preference. It never fails:
// a missing credential or a collaborator error yields an empty list.
func (s *Service) Suggest(ctx context.Context, query string) []string {
	norm := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if norm == "" {
		return []string{}
	}
	key := "suggest:" + norm

	var out []string
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &out)
		switch {
		case ok && err == nil:
			return out
		case ok:
			log.Warn().Err(err).Str("key", key).Msg("evicting undecodable suggestion entry")
			_ = s.cache.Del(ctx, key)
		}
	}

	out, err := s.ai.SuggestDestinations(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			log.Warn().Err(err).Str("query", query).Msg("suggestions failed")
		}
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	if s.cache != nil && len(out) > 0 {
		_ = s.cache.Set(ctx, key, out, int(s.suggestTTL.Seconds()))
	}
	return out
}

// SuggestionClicked acknowledges a suggestion pill. No search is wired up.
func SuggestionClicked(name string) string {
	return fmt.Sprintf("Searching for %s... (Demo: Suggestion Clicked)", name)
}
