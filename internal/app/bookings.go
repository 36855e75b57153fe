package app

import (
	"context"
	"errors"

	"stayhub/internal/domain"
)

// BookingInput is the typed request payload for booking creation. Price is a
// pointer because absent and zero are different cases to the validator.
type BookingInput struct {
	Place          int64    `json:"place"`
	CheckIn        string   `json:"checkIn"`
	CheckOut       string   `json:"checkOut"`
	NumberOfGuests int      `json:"numberOfGuests"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Price          *float64 `json:"price"`
}

type BookingService struct {
	bookings domain.BookingRepository
}

func NewBookingService(bookings domain.BookingRepository) *BookingService {
	return &BookingService{bookings: bookings}
}

// Create validates required fields first, then price. There is no
// checkIn < checkOut check, no place-existence check, and no overlap
// detection against other bookings.
func (s *BookingService) Create(ctx context.Context, userID int64, in BookingInput) (domain.Booking, error) {
	if in.Place == 0 || in.CheckIn == "" || in.CheckOut == "" || in.Name == "" || in.Phone == "" {
		return domain.Booking{}, domain.E(domain.ErrInvalidInput, "missing_fields", "All booking fields are required")
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.Booking{}, domain.E(domain.ErrInvalidInput, "invalid_price", "Price must be a positive number")
	}

	b := domain.Booking{
		PlaceID:        in.Place,
		UserID:         userID,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		NumberOfGuests: in.NumberOfGuests,
		Name:           in.Name,
		Phone:          in.Phone,
	}
	if in.Price != nil {
		b.Price = *in.Price
	}
	return s.bookings.CreateBooking(ctx, b)
}

func (s *BookingService) ForUser(ctx context.Context, userID int64) ([]domain.BookingWithPlace, error) {
	return s.bookings.BookingsByUser(ctx, userID)
}

// Cancel enforces the creator gate: only the user who made the booking may
// remove it.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int64) error {
	b, err := s.bookings.BookingByID(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.E(domain.ErrNotFound, "not_found", "Booking not found")
	}
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return domain.E(domain.ErrForbidden, "forbidden", "You can only cancel your own bookings")
	}
	return s.bookings.DeleteBooking(ctx, bookingID)
}
