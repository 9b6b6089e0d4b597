package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/domain"
)

const (
	ChatUnavailable = "AI Chat is unavailable without an API Key."
	ChatNoAnswer    = "I couldn't generate an answer at this time."
	ChatTrouble     = "Sorry, I am having trouble connecting to the travel database."
)

// SendChat appends the user's turn, asks the assistant with that text only, and
// appends the reply unless a later send has superseded it.
func (s *Service) SendChat(ctx context.Context, sid, text string) (Screen, error) {
	if strings.TrimSpace(text) == "" {
		sc, err := s.Screen(ctx, sid)
		if err != nil {
			return sc, err
		}
		return sc, fmt.Errorf("%w: message is empty", domain.ErrValidation)
	}

	var seq uint64
	sc, err := s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		var next domain.State
		next, seq = AskChat(st, text)
		return next, nil
	})
	if err != nil {
		return sc, err
	}

	reply := s.advice(ctx, text)

	var applied bool
	sc, err = s.settle(ctx, sid, "chat", func(st domain.State) (domain.State, error) {
		var next domain.State
		next, applied = AnswerChat(st, seq, reply)
		return next, nil
	})
	if err != nil {
		return sc, err
	}
	if !applied {
		observability.ObserveSuperseded("chat")
		log.Debug().Uint64("seq", seq).Msg("chat reply superseded by a newer message")
	}
	return sc, nil
}

func (s *Service) advice(ctx context.Context, q string) string {
	reply, err := s.ai.TravelAdvice(ctx, q)
	switch {
	case errors.Is(err, domain.ErrNoCredential):
		return ChatUnavailable
	case errors.Is(err, domain.ErrEmptyReply):
		return ChatNoAnswer
	case err != nil:
		log.Warn().Err(err).Msg("travel advice failed")
		return ChatTrouble
	case strings.TrimSpace(reply) == "":
		return ChatNoAnswer
	}
	return reply
}
