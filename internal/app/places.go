package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayhub/internal/domain"
)

// PlaceInput is the typed request payload for place create/update. Update has
// full-replace semantics: whatever the caller omitted overwrites the stored
// value with its zero.
type PlaceInput struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	AddedPhotos []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       *float64 `json:"price"`
}

type PlaceService struct {
	places   domain.PlaceRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPlaceService(places domain.PlaceRepository, cache domain.Cache, ttl time.Duration) *PlaceService {
	return &PlaceService{places: places, cache: cache, cacheTTL: ttl}
}

const allPlacesKey = "places:all"

func placeKey(id int64) string { return fmt.Sprintf("place:%d", id) }

func validatePlaceInput(in PlaceInput, forUpdate bool) error {
	if forUpdate && in.ID == 0 {
		return domain.E(domain.ErrInvalidInput, "missing_fields", "ID, title, and address are required")
	}
	if in.Title == "" || in.Address == "" {
		if forUpdate {
			return domain.E(domain.ErrInvalidInput, "missing_fields", "ID, title, and address are required")
		}
		return domain.E(domain.ErrInvalidInput, "missing_fields", "Title and address are required")
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.E(domain.ErrInvalidInput, "invalid_price", "Price must be a positive number")
	}
	return nil
}

func placeFromInput(in PlaceInput, ownerID int64) domain.Place {
	p := domain.Place{
		ID:          in.ID,
		OwnerID:     ownerID,
		Title:       in.Title,
		Address:     in.Address,
		Photos:      in.AddedPhotos,
		Description: in.Description,
		Perks:       in.Perks,
		ExtraInfo:   in.ExtraInfo,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		MaxGuests:   in.MaxGuests,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	return p
}

func (s *PlaceService) Create(ctx context.Context, ownerID int64, in PlaceInput) (domain.Place, error) {
	if err := validatePlaceInput(in, false); err != nil {
		return domain.Place{}, err
	}
	p, err := s.places.CreatePlace(ctx, placeFromInput(in, ownerID))
	if err != nil {
		return domain.Place{}, err
	}
	_ = s.cache.Del(ctx, allPlacesKey)
	return p, nil
}

// Update enforces the ownership gate: only the recorded owner may mutate.
func (s *PlaceService) Update(ctx context.Context, callerID int64, in PlaceInput) error {
	if err := validatePlaceInput(in, true); err != nil {
		return err
	}

	existing, err := s.places.PlaceByID(ctx, in.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.E(domain.ErrNotFound, "not_found", "Place not found")
	}
	if err != nil {
		return err
	}
	if existing.OwnerID != callerID {
		return domain.E(domain.ErrForbidden, "forbidden", "You can only edit your own places")
	}

	p := placeFromInput(in, existing.OwnerID)
	p.CreatedAt = existing.CreatedAt
	if err := s.places.UpdatePlace(ctx, p); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, placeKey(in.ID))
	_ = s.cache.Del(ctx, allPlacesKey)
	return nil
}

func (s *PlaceService) Get(ctx context.Context, id int64) (domain.Place, error) {
	key := placeKey(id)
	var p domain.Place
	if ok, _ := s.cache.Get(ctx, key, &p); ok {
		return p, nil
	}

	p, err := s.places.PlaceByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Place{}, domain.E(domain.ErrNotFound, "not_found", "Place not found")
	}
	if err != nil {
		return domain.Place{}, err
	}
	_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	return p, nil
}

func (s *PlaceService) ByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	return s.places.PlacesByOwner(ctx, ownerID)
}

// Search is the public listing query. A blank query serves the cached full
// listing in creation order; search strings are unbounded so they always go
// to the store.
func (s *PlaceService) Search(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query != "" {
		return s.places.SearchPlaces(ctx, query)
	}

	var out []domain.Place
	if ok, _ := s.cache.Get(ctx, allPlacesKey, &out); ok {
		return out, nil
	}
	out, err := s.places.SearchPlaces(ctx, "")
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, allPlacesKey, out, int(s.cacheTTL.Seconds()))
	return out, nil
}
