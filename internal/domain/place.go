package domain

import "time"

type Place struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"` // filenames under the uploads dir, display order
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extraInfo"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	MaxGuests   int       `json:"maxGuests"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
