package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func fptr(f float64) *float64 { return &f }

// ---- fake place repo ----

type fakePlaces struct {
	places []domain.Place
	nextID int64
}

func (f *fakePlaces) CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.places = append(f.places, p)
	return p, nil
}

func (f *fakePlaces) PlaceByID(ctx context.Context, id int64) (domain.Place, error) {
	for _, p := range f.places {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Place{}, domain.ErrNotFound
}

func (f *fakePlaces) UpdatePlace(ctx context.Context, p domain.Place) error {
	for i := range f.places {
		if f.places[i].ID == p.ID {
			f.places[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakePlaces) PlacesByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	var out []domain.Place
	for _, p := range f.places {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaces) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []domain.Place
	for _, p := range f.places {
		if query == "" ||
			strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Address), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- fake cache ----

type fakeCache struct {
	store map[string][]domain.Place
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*[]domain.Place); ok {
		*d = v
		return true, nil
	}
	return false, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]domain.Place{}
	}
	if places, ok := v.([]domain.Place); ok {
		c.store[key] = places
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func newPlaceService(repo *fakePlaces) (*app.PlaceService, *fakeCache) {
	cache := &fakeCache{}
	return app.NewPlaceService(repo, cache, 10*time.Minute), cache
}

// ---- tests ----

func TestPlaceCreate_Validation(t *testing.T) {
	svc, _ := newPlaceService(&fakePlaces{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, app.PlaceInput{Title: "", Address: "Somewhere"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing title: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, 1, app.PlaceInput{Title: "Villa", Address: "Somewhere", Price: fptr(-5)}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative price: expected ErrInvalidInput, got %v", err)
	}

	p, err := svc.Create(ctx, 1, app.PlaceInput{Title: "Villa", Address: "Somewhere", Price: fptr(120)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.OwnerID != 1 || p.Price != 120 {
		t.Fatalf("unexpected place: %+v", p)
	}
}

func TestPlaceUpdate_ForbiddenForEveryNonOwner(t *testing.T) {
	repo := &fakePlaces{}
	svc, _ := newPlaceService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, 42, app.PlaceInput{Title: "Cabin", Address: "Forest Rd 1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := app.PlaceInput{ID: p.ID, Title: "Hacked", Address: "Elsewhere"}
	for _, caller := range []int64{1, 2, 41, 43, 9999} {
		if err := svc.Update(ctx, caller, in); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("caller %d: expected ErrForbidden, got %v", caller, err)
		}
	}

	// the owner still may
	if err := svc.Update(ctx, 42, app.PlaceInput{ID: p.ID, Title: "Cabin 2", Address: "Forest Rd 1"}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
}

func TestPlaceUpdate_FullFieldReplace(t *testing.T) {
	repo := &fakePlaces{}
	svc, _ := newPlaceService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, 7, app.PlaceInput{
		Title: "Loft", Address: "Main St", Description: "cozy",
		Perks: []string{"wifi"}, MaxGuests: 4, Price: fptr(99),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// update omits description, perks, maxGuests, price: they must be wiped
	if err := svc.Update(ctx, 7, app.PlaceInput{ID: p.ID, Title: "Loft", Address: "Main St"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.PlaceByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Description != "" || len(got.Perks) != 0 || got.MaxGuests != 0 || got.Price != 0 {
		t.Fatalf("expected omitted fields wiped, got %+v", got)
	}
	if got.OwnerID != 7 {
		t.Fatalf("owner must survive update, got %d", got.OwnerID)
	}
}

func TestPlaceUpdate_NotFound(t *testing.T) {
	svc, _ := newPlaceService(&fakePlaces{})
	err := svc.Update(context.Background(), 1, app.PlaceInput{ID: 123, Title: "X", Address: "Y"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch_SubstringSemantics(t *testing.T) {
	repo := &fakePlaces{}
	svc, _ := newPlaceService(repo)
	ctx := context.Background()

	seed := []app.PlaceInput{
		{Title: "Beach House", Address: "1 Shore Dr"},
		{Title: "City Flat", Address: "2 Beach Ave"},
		{Title: "Mountain Hut", Address: "3 Peak Rd", Description: "far from any BEACH"},
		{Title: "Desert Dome", Address: "4 Dune Way", Description: "sand only"},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, 1, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := svc.Search(ctx, "beach")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 beach matches, got %d", len(got))
	}
	for _, p := range got {
		if p.Title == "Desert Dome" {
			t.Fatalf("Desert Dome must not match")
		}
	}

	// blank query returns everything in creation order
	all, err := svc.Search(ctx, "   ")
	if err != nil {
		t.Fatalf("search blank: %v", err)
	}
	if len(all) != 4 || all[0].Title != "Beach House" || all[3].Title != "Desert Dome" {
		t.Fatalf("expected all 4 in creation order, got %+v", all)
	}
}

func TestSearch_BlankQueryCachedAndInvalidated(t *testing.T) {
	repo := &fakePlaces{}
	svc, cache := newPlaceService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, app.PlaceInput{Title: "One", Address: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.Search(ctx, "")
	if err != nil || len(first) != 1 {
		t.Fatalf("first search: %v (%d items)", err, len(first))
	}

	// mutate repo behind the cache; second read must come from cache
	repo.places[0].Title = "SHOULD NOT SEE THIS"
	second, _ := svc.Search(ctx, "")
	if second[0].Title != "One" {
		t.Fatalf("expected cached listing, got %q", second[0].Title)
	}

	// a write invalidates, next read sees fresh data
	if _, err := svc.Create(ctx, 1, app.PlaceInput{Title: "Two", Address: "B"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := cache.store["places:all"]; ok {
		t.Fatalf("listing cache should be invalidated by create")
	}
	third, _ := svc.Search(ctx, "")
	if len(third) != 2 {
		t.Fatalf("expected 2 places after invalidation, got %d", len(third))
	}
}
