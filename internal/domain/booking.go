package domain

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

const (
	MinGuests = 1
	MaxGuests = 10
)

type Booking struct {
	ID              string        `json:"id"`
	DestinationID   string        `json:"destinationId"`
	DestinationName string        `json:"destinationName"` // denormalized
	UserID          string        `json:"userId"`
	UserName        string        `json:"userName"` // denormalized
	Date            string        `json:"date"`     // YYYY-MM-DD
	Guests          int           `json:"guests"`
	TotalPrice      float64       `json:"totalPrice"` // price * guests at creation
	Status          BookingStatus `json:"status"`
}

// RelaySubmission is the payload forwarded to the booking relay.
type RelaySubmission struct {
	Destination string  `json:"destination"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
	Date        string  `json:"date"`
	Guests      int     `json:"guests"`
	TotalPrice  float64 `json:"total_price"`
	BookingID   string  `json:"booking_id"`
}
