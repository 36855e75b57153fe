package domain

import "time"

// Booking dates travel as opaque strings; nothing server-side parses or
// orders them.
type Booking struct {
	ID             int64     `json:"id"`
	PlaceID        int64     `json:"place"`
	UserID         int64     `json:"user"`
	CheckIn        string    `json:"checkIn"`
	CheckOut       string    `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Price          float64   `json:"price"` // client-supplied, not re-derived
	CreatedAt      time.Time `json:"createdAt"`
}

// BookingWithPlace is the read model for a user's booking list: the full
// place document is embedded in the "place" field, shadowing Booking.PlaceID.
type BookingWithPlace struct {
	Booking
	Place Place `json:"place"`
}
