package domain

// SeedDestinations returns a fresh copy of the built-in catalog.
func SeedDestinations() []Destination {
	return []Destination{
		{
			ID:          "1",
			Name:        "Santorini Sunset Retreat",
			Location:    "Greece",
			Description: "Experience the magic of the Aegean Sea with white-washed buildings and breathtaking sunsets. A perfect blend of relaxation and exploration.",
			Price:       1800,
			Image:       "https://picsum.photos/800/600?random=1",
			Duration:    "5 Days",
			Rating:      4.8,
			Features:    []string{"Luxury Villa", "Private Boat Tour", "Wine Tasting"},
			Itinerary: []DayPlan{
				{Day: 1, Title: "Arrival & Welcome", Activities: []string{"Transfer to hotel", "Welcome dinner with sunset view"}},
				{Day: 2, Title: "Island Exploration", Activities: []string{"Visit Oia", "Shopping in Fira"}},
				{Day: 3, Title: "Volcanic Adventure", Activities: []string{"Boat tour to the volcano", "Hot springs swim"}},
			},
		},
		{
			ID:          "2",
			Name:        "Kyoto Cultural Immersion",
			Location:    "Japan",
			Description: "Step back in time in the ancient capital of Japan. Visit stunning temples, walk through bamboo forests, and participate in a traditional tea ceremony.",
			Price:       2200,
			Image:       "https://picsum.photos/800/600?random=2",
			Duration:    "7 Days",
			Rating:      4.9,
			Features:    []string{"Temple Tours", "Tea Ceremony", "Bullet Train Pass"},
			Itinerary: []DayPlan{
				{Day: 1, Title: "Arrival in Kyoto", Activities: []string{"Check-in", "Gion District walking tour"}},
				{Day: 2, Title: "Northern Kyoto", Activities: []string{"Kinkaku-ji (Golden Pavilion)", "Ryoan-ji Zen Garden"}},
			},
		},
		{
			ID:          "3",
			Name:        "Bali Tropical Paradise",
			Location:    "Indonesia",
			Description: "Immerse yourself in the lush jungles and pristine beaches of Bali. From spiritual temples to vibrant nightlife, this island has it all.",
			Price:       1200,
			Image:       "https://picsum.photos/800/600?random=3",
			Duration:    "6 Days",
			Rating:      4.7,
			Features:    []string{"Beachfront Resort", "Surfing Lessons", "Ubud Monkey Forest"},
			Itinerary: []DayPlan{
				{Day: 1, Title: "Ubud Welcome", Activities: []string{"Transfer to Ubud", "Relax at resort"}},
				{Day: 2, Title: "Culture & Nature", Activities: []string{"Monkey Forest", "Tegalalang Rice Terrace"}},
			},
		},
		{
			ID:          "4",
			Name:        "Machu Picchu Expedition",
			Location:    "Peru",
			Description: "Journey to the Lost City of the Incas. A bucket-list adventure featuring hiking, history, and stunning Andean landscapes.",
			Price:       2500,
			Image:       "https://picsum.photos/800/600?random=4",
			Duration:    "6 Days",
			Rating:      4.9,
			Features:    []string{"Guided Trek", "Train to Aguas Calientes", "Historic Sites"},
			Itinerary: []DayPlan{
				{Day: 1, Title: "Cusco Acclimatization", Activities: []string{"Arrival in Cusco", "Light city walk"}},
				{Day: 2, Title: "Sacred Valley", Activities: []string{"Pisac Market", "Ollantaytambo Fortress"}},
			},
		},
	}
}
