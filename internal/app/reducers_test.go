package app

import (
	"testing"

	"uncharted_escape/internal/domain"
)

func TestSettleBooking_DoesNotAliasPreviousState(t *testing.T) {
	s0 := NewState(domain.SeedDestinations())
	s0, _ = ShowDestination(s0, "1")
	s0 = BeginBooking(s0)

	b := domain.Booking{ID: "b1", DestinationID: "1", Status: domain.StatusPending}
	s1 := SettleBooking(s0, &b)

	if len(s0.Bookings) != 0 || s0.View.Details.Success {
		t.Fatalf("previous state mutated: %+v", s0.View.Details)
	}
	if len(s1.Bookings) != 1 || !s1.View.Details.Success || s1.Booking.InFlight {
		t.Fatalf("settled state wrong: bookings=%d success=%v inflight=%v",
			len(s1.Bookings), s1.View.Details.Success, s1.Booking.InFlight)
	}
}

func TestSettleBooking_Idempotent(t *testing.T) {
	s := NewState(domain.SeedDestinations())
	b := domain.Booking{ID: "b1", DestinationID: "1"}
	s = SettleBooking(SettleBooking(s, &b), &b)
	if len(s.Bookings) != 1 {
		t.Fatalf("bookings=%d want 1", len(s.Bookings))
	}
}

func TestSettleBooking_OtherViewKeepsScreen(t *testing.T) {
	s := NewState(domain.SeedDestinations())
	s, _ = ShowDestination(s, "2")
	s = BeginBooking(s)
	s, _ = Navigate(s, domain.ViewHome)

	s = SettleBooking(s, &domain.Booking{ID: "b1", DestinationID: "2"})
	if s.View.Kind != domain.ViewHome || len(s.Bookings) != 1 {
		t.Fatalf("view=%s bookings=%d", s.View.Kind, len(s.Bookings))
	}
}

func TestSettleBooking_FailureRecordsNothing(t *testing.T) {
	s := NewState(domain.SeedDestinations())
	s, _ = ShowDestination(s, "1")
	s = SettleBooking(BeginBooking(s), nil)
	if len(s.Bookings) != 0 || s.Booking.InFlight || s.View.Details.Success {
		t.Fatalf("unexpected state after failed settle: %+v", s.Booking)
	}
}

func TestSetBookingStatus_Transitions(t *testing.T) {
	base := NewState(nil)
	base.Bookings = []domain.Booking{{ID: "b1", Status: domain.StatusPending}}

	tests := []struct {
		from, to domain.BookingStatus
		ok       bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusPending, true},
		{domain.StatusConfirmed, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusConfirmed, false},
		{domain.StatusConfirmed, domain.StatusPending, false},
	}
	for _, tc := range tests {
		s := base
		s.Bookings = []domain.Booking{{ID: "b1", Status: tc.from}}
		got, err := SetBookingStatus(s, "b1", tc.to)
		if tc.ok {
			if err != nil || got.Bookings[0].Status != tc.to {
				t.Fatalf("%s->%s: err=%v status=%s", tc.from, tc.to, err, got.Bookings[0].Status)
			}
			continue
		}
		if err == nil {
			t.Fatalf("%s->%s: expected error", tc.from, tc.to)
		}
		if s.Bookings[0].Status != tc.from {
			t.Fatalf("%s->%s: input mutated", tc.from, tc.to)
		}
	}
}

func TestPrependDestination(t *testing.T) {
	s0 := NewState(domain.SeedDestinations())
	s1 := PrependDestination(s0, domain.Destination{ID: "x", Name: "Iceland"})
	if len(s0.Destinations) != 4 || len(s1.Destinations) != 5 || s1.Destinations[0].ID != "x" {
		t.Fatalf("s0=%d s1=%d first=%s", len(s0.Destinations), len(s1.Destinations), s1.Destinations[0].ID)
	}
}

func TestSignOut_BumpsEpoch(t *testing.T) {
	s := SignIn(NewState(nil), domain.User{ID: "admin1", Role: domain.RoleAdmin})
	s = BeginGeneration(s)
	before := s.Epoch
	s = SignOut(s)
	if s.Epoch != before+1 || s.Principal != nil || s.Admin.Generating {
		t.Fatalf("sign out left %+v", s)
	}
}

func TestGuardAdmin(t *testing.T) {
	s := NewState(nil)
	s.View = domain.View{Kind: domain.ViewAdminPanel}
	if g, redirected := GuardAdmin(s); !redirected || g.View.Kind != domain.ViewHome {
		t.Fatalf("anonymous not redirected")
	}
	s.Principal = &domain.User{Role: domain.RoleUser}
	if _, redirected := GuardAdmin(s); !redirected {
		t.Fatalf("user not redirected")
	}
	s.Principal = &domain.User{Role: domain.RoleAdmin}
	if g, redirected := GuardAdmin(s); redirected || g.View.Kind != domain.ViewAdminPanel {
		t.Fatalf("admin redirected")
	}
}

func TestRender_NavAndDashboard(t *testing.T) {
	s := SignIn(NewState(domain.SeedDestinations()), domain.User{ID: "user1", Name: "John Traveller", Role: domain.RoleUser})
	s.Bookings = []domain.Booking{
		{ID: "a", UserID: "user1", TotalPrice: 2200, Status: domain.StatusPending},
		{ID: "b", UserID: "other", TotalPrice: 1200, Status: domain.StatusPending},
	}
	s, _ = Navigate(s, domain.ViewDashboard)
	sc := Render(s)

	labels := make([]string, 0, len(sc.Nav))
	for _, n := range sc.Nav {
		labels = append(labels, n.Label)
		if n.Label == "My Trips" && !n.Active {
			t.Fatalf("My Trips should be active")
		}
	}
	if got := len(labels); got != 3 || labels[0] != "Home" || labels[1] != "My Trips" || labels[2] != "Logout" {
		t.Fatalf("nav=%v", labels)
	}
	if len(sc.Dashboard.Bookings) != 1 || sc.Dashboard.Bookings[0].ID != "a" || sc.Dashboard.Bookings[0].TotalPrice != "$2,200" {
		t.Fatalf("dashboard=%+v", sc.Dashboard)
	}

	s.Bookings = nil
	if sc := Render(s); sc.Dashboard.Empty != "You haven't booked any trips yet." {
		t.Fatalf("empty=%q", sc.Dashboard.Empty)
	}
}

func TestRender_AdminActionsOnlyOnPending(t *testing.T) {
	s := SignIn(NewState(nil), domain.User{ID: "admin1", Role: domain.RoleAdmin})
	s.Bookings = []domain.Booking{
		{ID: "a", Status: domain.StatusPending},
		{ID: "b", Status: domain.StatusConfirmed},
	}
	sc := Render(s)
	if sc.Admin == nil || len(sc.Admin.Bookings[0].Actions) != 2 || len(sc.Admin.Bookings[1].Actions) != 0 {
		t.Fatalf("admin=%+v", sc.Admin)
	}
	s.Bookings = nil
	if sc := Render(s); sc.Admin.Empty != "No bookings found." {
		t.Fatalf("empty=%q", sc.Admin.Empty)
	}
}

func TestAnswerChat_StaleSeq(t *testing.T) {
	s, seq1 := AskChat(NewState(nil), "a")
	s, seq2 := AskChat(s, "b")
	if _, ok := AnswerChat(s, seq1, "old"); ok {
		t.Fatalf("stale reply applied")
	}
	s, ok := AnswerChat(s, seq2, "new")
	if !ok || len(s.Chat.Turns) != 3 || s.Chat.Pending {
		t.Fatalf("turns=%+v pending=%v", s.Chat.Turns, s.Chat.Pending)
	}
}
