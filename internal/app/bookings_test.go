package app_test

import (
	"context"
	"errors"
	"testing"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

// ---- fake booking repo ----

type fakeBookings struct {
	byID   map[int64]domain.Booking
	nextID int64
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: map[int64]domain.Booking{}}
}

func (f *fakeBookings) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	f.byID[b.ID] = b
	return b, nil
}

func (f *fakeBookings) BookingByID(ctx context.Context, id int64) (domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookings) BookingsByUser(ctx context.Context, userID int64) ([]domain.BookingWithPlace, error) {
	var out []domain.BookingWithPlace
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.byID[id]; ok && b.UserID == userID {
			out = append(out, domain.BookingWithPlace{Booking: b, Place: domain.Place{ID: b.PlaceID}})
		}
	}
	return out, nil
}

func (f *fakeBookings) DeleteBooking(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func validBookingInput() app.BookingInput {
	return app.BookingInput{
		Place:          1,
		CheckIn:        "2026-09-01",
		CheckOut:       "2026-09-05",
		NumberOfGuests: 2,
		Name:           "Alice",
		Phone:          "+1234567",
		Price:          fptr(400),
	}
}

// ---- tests ----

func TestBookingCreate_MissingFieldsBeforePrice(t *testing.T) {
	svc := app.NewBookingService(newFakeBookings())
	ctx := context.Background()

	// both defects present: missing-fields must win, matching validation order
	in := validBookingInput()
	in.Phone = ""
	in.Price = fptr(-10)
	_, err := svc.Create(ctx, 1, in)
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != "missing_fields" {
		t.Fatalf("expected missing_fields, got %v", err)
	}
}

func TestBookingCreate_InvalidPrice(t *testing.T) {
	svc := app.NewBookingService(newFakeBookings())
	in := validBookingInput()
	in.Price = fptr(-1)
	_, err := svc.Create(context.Background(), 1, in)
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != "invalid_price" {
		t.Fatalf("expected invalid_price, got %v", err)
	}
}

func TestBookingCreate_PriceOptional(t *testing.T) {
	svc := app.NewBookingService(newFakeBookings())
	in := validBookingInput()
	in.Price = nil
	b, err := svc.Create(context.Background(), 9, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.UserID != 9 || b.Price != 0 {
		t.Fatalf("unexpected booking: %+v", b)
	}
}

func TestBookingCreate_NoExistenceOrOverlapChecks(t *testing.T) {
	// unknown place ids and overlapping date ranges are accepted
	svc := app.NewBookingService(newFakeBookings())
	ctx := context.Background()

	in := validBookingInput()
	in.Place = 999999
	if _, err := svc.Create(ctx, 1, in); err != nil {
		t.Fatalf("unknown place: %v", err)
	}
	if _, err := svc.Create(ctx, 2, in); err != nil {
		t.Fatalf("overlapping booking: %v", err)
	}
}

func TestBookingCancel_TwiceYieldsNotFound(t *testing.T) {
	svc := app.NewBookingService(newFakeBookings())
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, validBookingInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(ctx, 1, b.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := svc.Cancel(ctx, 1, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second cancel: expected ErrNotFound, got %v", err)
	}
}

func TestBookingCancel_ForbiddenForOtherUser(t *testing.T) {
	repo := newFakeBookings()
	svc := app.NewBookingService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, validBookingInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(ctx, 2, b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// booking must still exist afterwards
	if _, err := repo.BookingByID(ctx, b.ID); err != nil {
		t.Fatalf("booking vanished after forbidden cancel: %v", err)
	}
}

func TestBookingsForUser_EmbedsPlace(t *testing.T) {
	svc := app.NewBookingService(newFakeBookings())
	ctx := context.Background()

	in := validBookingInput()
	in.Place = 5
	if _, err := svc.Create(ctx, 3, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := svc.ForUser(ctx, 3)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(out) != 1 || out[0].Place.ID != 5 {
		t.Fatalf("expected embedded place 5, got %+v", out)
	}
}
