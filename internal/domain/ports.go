package domain

import "context"

type UserRepository interface {
	// CreateUser returns ErrConflict when the normalized email is taken.
	CreateUser(ctx context.Context, u User) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id int64) (User, error)
}

type PlaceRepository interface {
	CreatePlace(ctx context.Context, p Place) (Place, error)
	PlaceByID(ctx context.Context, id int64) (Place, error)

	// UpdatePlace replaces every mutable column from p; fields the caller
	// left empty overwrite what was stored.
	UpdatePlace(ctx context.Context, p Place) error

	PlacesByOwner(ctx context.Context, ownerID int64) ([]Place, error)

	// SearchPlaces returns all places in creation order when query is blank,
	// otherwise places whose title, address, or description contains query
	// case-insensitively.
	SearchPlaces(ctx context.Context, query string) ([]Place, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	BookingByID(ctx context.Context, id int64) (Booking, error)
	BookingsByUser(ctx context.Context, userID int64) ([]BookingWithPlace, error)
	DeleteBooking(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, rv Review) (Review, error)
	// ReviewsByPlace returns newest first.
	ReviewsByPlace(ctx context.Context, placeID string) ([]Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
