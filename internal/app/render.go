package app

import (
	"github.com/samber/lo"

	"uncharted_escape/internal/domain"
)

// Screen is the rendered form of a session's active view.
type Screen struct {
	View       domain.ViewKind  `json:"view"`
	Redirected bool             `json:"redirected,omitempty"`
	Nav        []NavLink        `json:"nav"`
	Principal  *domain.User     `json:"principal,omitempty"`
	Home       *HomeScreen      `json:"home,omitempty"`
	Details    *DetailsScreen   `json:"details,omitempty"`
	Login      *LoginScreen     `json:"login,omitempty"`
	Dashboard  *DashboardScreen `json:"dashboard,omitempty"`
	Admin      *AdminScreen     `json:"admin,omitempty"`
	Chat       ChatPanel        `json:"chat"`
}

type NavLink struct {
	Label  string          `json:"label"`
	View   domain.ViewKind `json:"view,omitempty"`
	Action string          `json:"action,omitempty"` // "logout"
	Active bool            `json:"active,omitempty"`
}

type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Duration    string `json:"duration"`
	Rating      string `json:"rating"`
	Price       string `json:"price"`
	PriceLabel  string `json:"priceLabel"`
}

type HomeScreen struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

type DetailsScreen struct {
	Destination  domain.Destination `json:"destination"`
	Price        string             `json:"price"`
	Highlights   []string           `json:"highlights"`
	Itinerary    []domain.DayPlan   `json:"itinerary,omitempty"`
	Form         *BookingFormScreen `json:"form,omitempty"`
	Confirmation *Confirmation      `json:"confirmation,omitempty"`
}

type BookingFormScreen struct {
	CTA       string `json:"cta"`
	Hint      string `json:"hint,omitempty"`
	Disabled  bool   `json:"disabled"`
	MinGuests int    `json:"minGuests"`
	MaxGuests int    `json:"maxGuests"`
}

type Confirmation struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Next    string `json:"next"`
}

type LoginScreen struct {
	Email string `json:"email"`
	Error string `json:"error,omitempty"`
	Hint  string `json:"hint"`
}

type BookingRow struct {
	ID              string                 `json:"id"`
	DestinationName string                 `json:"destinationName"`
	UserName        string                 `json:"userName"`
	Date            string                 `json:"date"`
	Guests          int                    `json:"guests"`
	TotalPrice      string                 `json:"totalPrice"`
	Status          domain.BookingStatus   `json:"status"`
	Actions         []domain.BookingStatus `json:"actions,omitempty"`
}

type DashboardScreen struct {
	Title    string       `json:"title"`
	Bookings []BookingRow `json:"bookings"`
	Empty    string       `json:"empty,omitempty"`
}

type AdminScreen struct {
	Generating bool         `json:"generating"`
	Bookings   []BookingRow `json:"bookings"`
	Empty      string       `json:"empty,omitempty"`
}

type ChatPanel struct {
	Turns       []domain.ChatTurn `json:"turns"`
	Thinking    bool              `json:"thinking"`
	Placeholder string            `json:"placeholder,omitempty"`
}

// Render is pure; the admin guard has already been applied by the caller.
func Render(st domain.State) Screen {
	sc := Screen{
		View:      st.View.Kind,
		Nav:       navFor(st),
		Principal: st.Principal,
		Chat:      chatPanel(st.Chat),
	}
	switch st.View.Kind {
	case domain.ViewHome:
		sc.Home = &HomeScreen{Title: "Popular Destinations", Cards: Cards(st.Destinations)}
	case domain.ViewDestinationDetails:
		if st.View.Details != nil {
			sc.Details = detailsScreen(st)
		}
	case domain.ViewLogin:
		sc.Login = &LoginScreen{Email: st.Login.Email, Error: st.Login.Error, Hint: "admin@uncharted.com / admin"}
	case domain.ViewDashboard:
		sc.Dashboard = dashboardScreen(st)
	case domain.ViewAdminPanel:
		if st.Principal.IsAdmin() {
			sc.Admin = adminScreen(st)
		}
	}
	return sc
}

func navFor(st domain.State) []NavLink {
	link := func(label string, v domain.ViewKind) NavLink {
		return NavLink{Label: label, View: v, Active: st.View.Kind == v}
	}
	nav := []NavLink{link("Home", domain.ViewHome)}
	if st.Principal == nil {
		return append(nav, link("Login", domain.ViewLogin))
	}
	nav = append(nav, link("My Trips", domain.ViewDashboard))
	if st.Principal.IsAdmin() {
		nav = append(nav, link("Admin", domain.ViewAdminPanel))
	}
	return append(nav, NavLink{Label: "Logout", Action: "logout"})
}

func Cards(ds []domain.Destination) []Card {
	return lo.Map(ds, func(d domain.Destination, _ int) Card {
		return Card{
			ID:          d.ID,
			Name:        d.Name,
			Location:    d.Location,
			Description: d.Description,
			Image:       d.Image,
			Duration:    d.Duration,
			Rating:      FormatRating(d.Rating),
			Price:       FormatPrice(d.Price),
			PriceLabel:  "Starting from",
		}
	})
}

func detailsScreen(st domain.State) *DetailsScreen {
	v := st.View.Details
	d := v.Destination
	ds := &DetailsScreen{
		Destination: d,
		Price:       FormatPrice(d.Price),
		Highlights:  d.Features,
		Itinerary:   d.Itinerary,
	}
	if v.Success {
		ds.Confirmation = &Confirmation{
			Title:   "Booking Confirmed!",
			Message: "Check your dashboard for details.",
			Next:    string(domain.ViewDashboard),
		}
		return ds
	}
	form := &BookingFormScreen{
		CTA:       "Book Now",
		Disabled:  st.Booking.InFlight,
		MinGuests: domain.MinGuests,
		MaxGuests: domain.MaxGuests,
	}
	if st.Principal == nil {
		form.CTA = "Login to Book"
		form.Hint = "You will be redirected to login"
	}
	ds.Form = form
	return ds
}

func bookingRow(b domain.Booking) BookingRow {
	return BookingRow{
		ID:              b.ID,
		DestinationName: b.DestinationName,
		UserName:        b.UserName,
		Date:            b.Date,
		Guests:          b.Guests,
		TotalPrice:      FormatPrice(b.TotalPrice),
		Status:          b.Status,
	}
}

func dashboardScreen(st domain.State) *DashboardScreen {
	mine := lo.Filter(st.Bookings, func(b domain.Booking, _ int) bool {
		return st.Principal != nil && b.UserID == st.Principal.ID
	})
	ds := &DashboardScreen{Title: "My Trips", Bookings: lo.Map(mine, func(b domain.Booking, _ int) BookingRow { return bookingRow(b) })}
	if len(mine) == 0 {
		ds.Empty = "You haven't booked any trips yet."
	}
	return ds
}

func adminScreen(st domain.State) *AdminScreen {
	as := &AdminScreen{Generating: st.Admin.Generating}
	as.Bookings = lo.Map(st.Bookings, func(b domain.Booking, _ int) BookingRow {
		r := bookingRow(b)
		if b.Status == domain.StatusPending {
			r.Actions = []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCancelled}
		}
		return r
	})
	if len(st.Bookings) == 0 {
		as.Empty = "No bookings found."
	}
	return as
}

func chatPanel(c domain.Chat) ChatPanel {
	p := ChatPanel{Turns: c.Turns, Thinking: c.Pending}
	if p.Turns == nil {
		p.Turns = []domain.ChatTurn{}
	}
	if len(p.Turns) == 0 {
		p.Placeholder = "Ask me anything about travel!"
	}
	return p
}
