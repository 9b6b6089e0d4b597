package domain

type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Duration    string    `json:"duration"` // e.g. "5 Days"
	Rating      float64   `json:"rating"`
	Price       float64   `json:"price"` // USD
	Features    []string  `json:"features"`
	Itinerary   []DayPlan `json:"itinerary,omitempty"`
}

type DayPlan struct {
	Day        int      `json:"day"` // 1-based
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// GeneratedDetails is what the generative collaborator returns for a destination name.
type GeneratedDetails struct {
	Description   string    `json:"description"`
	PriceEstimate float64   `json:"priceEstimate"`
	Itinerary     []DayPlan `json:"itinerary"`
}
