package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/domain"
)

const dateLayout = "2006-01-02"

type BookingRequest struct {
	Date   string `json:"date"`
	Guests int    `json:"guests"`
}

func (r BookingRequest) validate() error {
	if r.Guests < domain.MinGuests || r.Guests > domain.MaxGuests {
		return fmt.Errorf("%w: guests must be between %d and %d", domain.ErrValidation, domain.MinGuests, domain.MaxGuests)
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return nil
}

func NewBooking(id string, d domain.Destination, u domain.User, r BookingRequest) domain.Booking {
	return domain.Booking{
		ID:              id,
		DestinationID:   d.ID,
		DestinationName: d.Name,
		UserID:          u.ID,
		UserName:        u.Name,
		Date:            r.Date,
		Guests:          r.Guests,
		TotalPrice:      d.Price * float64(r.Guests),
		Status:          domain.StatusPending,
	}
}

// Book submits a booking for the destination on screen. The candidate is
// recorded only after the relay accepts it; on failure it is discarded.
func (s *Service) Book(ctx context.Context, sid string, req BookingRequest) (Screen, error) {
	var (
		candidate domain.Booking
		email     string
	)
	sc, err := s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		if st.Principal == nil {
			next, _ := Navigate(st, domain.ViewLogin)
			return next, domain.ErrLoginRequired
		}
		if st.View.Kind != domain.ViewDestinationDetails || st.View.Details == nil {
			return st, fmt.Errorf("%w: no destination selected", domain.ErrValidation)
		}
		d, ok := FindDestination(st, st.View.Details.Destination.ID)
		if !ok {
			return st, fmt.Errorf("destination %s: %w", st.View.Details.Destination.ID, domain.ErrNotFound)
		}
		if st.Booking.InFlight {
			return st, domain.ErrBusy
		}
		if err := req.validate(); err != nil {
			return st, err
		}
		candidate = NewBooking(s.newID(), d, *st.Principal, req)
		email = st.Principal.Email
		return BeginBooking(st), nil
	})
	if err != nil {
		return sc, err
	}

	rerr := s.relay.Submit(ctx, domain.RelaySubmission{
		Destination: candidate.DestinationName,
		UserName:    candidate.UserName,
		UserEmail:   email,
		Date:        candidate.Date,
		Guests:      candidate.Guests,
		TotalPrice:  candidate.TotalPrice,
		BookingID:   candidate.ID,
	})

	var recorded *domain.Booking
	if rerr == nil {
		recorded = &candidate
	}
	// The relay already has the submission; settle even if the caller went away.
	sc, err = s.settle(ctx, sid, "booking", func(st domain.State) (domain.State, error) {
		return SettleBooking(st, recorded), nil
	})
	if err != nil {
		return sc, err
	}

	if rerr != nil {
		observability.ObserveBooking("failed")
		log.Warn().Err(rerr).Str("booking_id", candidate.ID).Str("destination", candidate.DestinationName).Msg("booking submission failed")
		msg := AlertBookingUnreachable
		if errors.Is(rerr, domain.ErrRelayRejected) {
			msg = AlertBookingRejected
		}
		return sc, &AlertError{Alert: msg, Err: rerr}
	}
	observability.ObserveBooking("recorded")
	log.Info().Str("booking_id", candidate.ID).Str("destination", candidate.DestinationName).Int("guests", candidate.Guests).Msg("booking recorded")
	return sc, nil
}

func (s *Service) UpdateStatus(ctx context.Context, sid, bookingID string, status domain.BookingStatus) (Screen, error) {
	return s.update(ctx, sid, func(st domain.State) (domain.State, error) {
		if err := requireAdmin(st); err != nil {
			return st, err
		}
		return SetBookingStatus(st, bookingID, status)
	})
}

// BookingForCalendar returns the booking and, if still listed, its destination.
// Only the booker or an admin may read it.
func BookingForCalendar(st domain.State, bookingID string) (domain.Booking, *domain.Destination, error) {
	if st.Principal == nil {
		return domain.Booking{}, nil, domain.ErrLoginRequired
	}
	var (
		b     domain.Booking
		found bool
	)
	for _, x := range st.Bookings {
		if x.ID == bookingID {
			b, found = x, true
			break
		}
	}
	if !found {
		return domain.Booking{}, nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
	}
	if b.UserID != st.Principal.ID && !st.Principal.IsAdmin() {
		return domain.Booking{}, nil, domain.ErrForbidden
	}
	if d, ok := FindDestination(st, b.DestinationID); ok {
		return b, &d, nil
	}
	return b, nil, nil
}
