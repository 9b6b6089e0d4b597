package domain

type ViewKind string

const (
	ViewHome               ViewKind = "HOME"
	ViewDestinationDetails ViewKind = "DESTINATION_DETAILS"
	ViewLogin              ViewKind = "LOGIN"
	ViewRegister           ViewKind = "REGISTER" // declared, never entered
	ViewDashboard          ViewKind = "DASHBOARD"
	ViewAdminPanel         ViewKind = "ADMIN_PANEL"
)

// View is a tagged union over the screens. Only the details variant carries data.
type View struct {
	Kind    ViewKind     `json:"kind"`
	Details *DetailsView `json:"details,omitempty"`
}

type DetailsView struct {
	Destination Destination `json:"destination"`
	Success     bool        `json:"success"` // booking went through; form shows its confirmation panel
}

func (v View) IsDetailsOf(destinationID string) bool {
	return v.Kind == ViewDestinationDetails && v.Details != nil && v.Details.Destination.ID == destinationID
}

type ChatRole string

const (
	ChatUser      ChatRole = "user"
	ChatAssistant ChatRole = "assistant"
)

type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

type Chat struct {
	Turns   []ChatTurn `json:"turns"`
	Seq     uint64     `json:"seq"`     // bumped on every send
	Pending bool       `json:"pending"` // latest send awaiting its reply
}

type LoginForm struct {
	Email string `json:"email"`
	Error string `json:"error,omitempty"`
}

type BookingForm struct {
	InFlight bool `json:"inFlight"`
}

type AdminForm struct {
	Generating bool `json:"generating"`
}

// State is everything one session owns.
type State struct {
	View         View          `json:"view"`
	Principal    *User         `json:"principal,omitempty"`
	Destinations []Destination `json:"destinations"`
	Bookings     []Booking     `json:"bookings"`
	Login        LoginForm     `json:"login"`
	Chat         Chat          `json:"chat"`
	Admin        AdminForm     `json:"admin"`
	Booking      BookingForm   `json:"booking"`
	Epoch        uint64        `json:"epoch"` // bumped on logout
}
