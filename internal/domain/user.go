package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // stored lowercased and trimmed
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
