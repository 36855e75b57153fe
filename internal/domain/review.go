package domain

import "time"

// Review references its place by raw string with no referential integrity,
// and carries no author. Create and delete are anonymous; existing clients
// depend on that.
type Review struct {
	ID      int64     `json:"id"`
	PlaceID string    `json:"placeId"`
	Rating  int       `json:"rating"` // 1..5
	Text    string    `json:"text"`
	Date    time.Time `json:"date"`
}
