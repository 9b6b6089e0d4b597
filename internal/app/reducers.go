package app

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"uncharted_escape/internal/domain"
)

// Reducers take a State by value and return the next State. Slices are copied
// before mutation so a previous State stays valid after a reducer runs.

func NewState(seed []domain.Destination) domain.State {
	return domain.State{
		View:         domain.View{Kind: domain.ViewHome},
		Destinations: slices.Clone(seed),
		Bookings:     []domain.Booking{},
		Chat:         domain.Chat{Turns: []domain.ChatTurn{}},
	}
}

// Navigate moves to one of the plain views. Details is entered through ShowDestination.
func Navigate(s domain.State, kind domain.ViewKind) (domain.State, error) {
	switch kind {
	case domain.ViewHome, domain.ViewLogin, domain.ViewDashboard, domain.ViewAdminPanel:
		s.View = domain.View{Kind: kind}
		return s, nil
	case domain.ViewDestinationDetails:
		return s, fmt.Errorf("%w: %s requires a destination", domain.ErrUnknownView, kind)
	default:
		return s, fmt.Errorf("%w: %q", domain.ErrUnknownView, kind)
	}
}

func ShowDestination(s domain.State, id string) (domain.State, error) {
	d, ok := FindDestination(s, id)
	if !ok {
		return s, fmt.Errorf("destination %s: %w", id, domain.ErrNotFound)
	}
	s.View = domain.View{Kind: domain.ViewDestinationDetails, Details: &domain.DetailsView{Destination: d}}
	return s, nil
}

func FindDestination(s domain.State, id string) (domain.Destination, bool) {
	return lo.Find(s.Destinations, func(d domain.Destination) bool { return d.ID == id })
}

// GuardAdmin bounces a non-admin principal off the admin panel.
func GuardAdmin(s domain.State) (domain.State, bool) {
	if s.View.Kind == domain.ViewAdminPanel && !s.Principal.IsAdmin() {
		s.View = domain.View{Kind: domain.ViewHome}
		return s, true
	}
	return s, false
}

func SignIn(s domain.State, u domain.User) domain.State {
	s.Principal = &u
	s.Login = domain.LoginForm{Email: u.Email}
	target := domain.ViewHome
	if u.IsAdmin() {
		target = domain.ViewAdminPanel
	}
	s.View = domain.View{Kind: target}
	return s
}

func LoginFailed(s domain.State, email, msg string) domain.State {
	s.Login = domain.LoginForm{Email: email, Error: msg}
	s.View = domain.View{Kind: domain.ViewLogin}
	return s
}

func SignOut(s domain.State) domain.State {
	s.Principal = nil
	s.Login = domain.LoginForm{}
	s.Admin = domain.AdminForm{}
	s.View = domain.View{Kind: domain.ViewHome}
	s.Epoch++
	return s
}

// withDetails rewrites the details variant without aliasing the previous one.
func withDetails(s domain.State, f func(d *domain.DetailsView)) domain.State {
	if s.View.Details == nil {
		return s
	}
	d := *s.View.Details
	f(&d)
	s.View.Details = &d
	return s
}

func BeginBooking(s domain.State) domain.State {
	s.Booking.InFlight = true
	return s
}

// SettleBooking clears the in-flight flag. On success it records b and, if the
// booked destination is still on screen, flips the form into its confirmation panel.
func SettleBooking(s domain.State, b *domain.Booking) domain.State {
	s.Booking.InFlight = false
	if b == nil {
		return s
	}
	if !lo.ContainsBy(s.Bookings, func(x domain.Booking) bool { return x.ID == b.ID }) {
		s.Bookings = append(slices.Clone(s.Bookings), *b)
	}
	if !s.View.IsDetailsOf(b.DestinationID) {
		return s
	}
	return withDetails(s, func(d *domain.DetailsView) { d.Success = true })
}

func BeginGeneration(s domain.State) domain.State {
	s.Admin.Generating = true
	return s
}

func EndGeneration(s domain.State) domain.State {
	s.Admin.Generating = false
	return s
}

func PrependDestination(s domain.State, d domain.Destination) domain.State {
	next := make([]domain.Destination, 0, len(s.Destinations)+1)
	next = append(next, d)
	s.Destinations = append(next, s.Destinations...)
	return s
}

// SetBookingStatus allows pending -> confirmed|cancelled. Re-applying the
// current status is a no-op.
func SetBookingStatus(s domain.State, id string, to domain.BookingStatus) (domain.State, error) {
	if !to.Valid() {
		return s, fmt.Errorf("%w: status %q", domain.ErrValidation, to)
	}
	_, idx, ok := lo.FindIndexOf(s.Bookings, func(b domain.Booking) bool { return b.ID == id })
	if !ok {
		return s, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	from := s.Bookings[idx].Status
	if from == to {
		return s, nil
	}
	if from != domain.StatusPending || to == domain.StatusPending {
		return s, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, from, to)
	}
	s.Bookings = slices.Clone(s.Bookings)
	s.Bookings[idx].Status = to
	return s, nil
}

// AskChat appends the user's turn and returns the sequence number its reply must match.
func AskChat(s domain.State, text string) (domain.State, uint64) {
	s.Chat.Turns = append(slices.Clone(s.Chat.Turns), domain.ChatTurn{Role: domain.ChatUser, Text: text})
	s.Chat.Seq++
	s.Chat.Pending = true
	return s, s.Chat.Seq
}

// AnswerChat appends the reply for seq, or reports false if a newer send superseded it.
func AnswerChat(s domain.State, seq uint64, reply string) (domain.State, bool) {
	if s.Chat.Seq != seq {
		return s, false
	}
	s.Chat.Turns = append(slices.Clone(s.Chat.Turns), domain.ChatTurn{Role: domain.ChatAssistant, Text: reply})
	s.Chat.Pending = false
	return s, true
}
