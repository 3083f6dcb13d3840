package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
)

type favoriteTestSetup struct {
	svc       FavoriteService
	favorites *mockFavoriteRepo
	listings  *mockListingRepo
}

func newTestFavoriteService() *favoriteTestSetup {
	listings := newMockListingRepo()
	favorites := newMockFavoriteRepo(listings)
	svc := NewFavoriteService(favorites, listings)
	return &favoriteTestSetup{svc: svc, favorites: favorites, listings: listings}
}

func (ts *favoriteTestSetup) createListing(t *testing.T, userID uuid.UUID, title string) *models.Listing {
	t.Helper()
	l := &models.Listing{UserID: userID, Title: title, Description: "d", Price: "$1"}
	if err := ts.listings.Create(context.Background(), l); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return l
}

func TestFavoriteService_Favorite(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated favorites never duplicate", func(t *testing.T) {
		ts := newTestFavoriteService()
		userID := uuid.New()
		l := ts.createListing(t, uuid.New(), "Item")

		for i := 0; i < 3; i++ {
			if err := ts.svc.Favorite(ctx, userID, l.ID); err != nil {
				t.Fatalf("Favorite() error = %v", err)
			}
		}
		if len(ts.favorites.favorites) != 1 {
			t.Errorf("favorite count = %d, want 1", len(ts.favorites.favorites))
		}
	})

	t.Run("unknown listing is not found", func(t *testing.T) {
		ts := newTestFavoriteService()
		err := ts.svc.Favorite(ctx, uuid.New(), uuid.New())
		apiErr, ok := err.(*apierrors.APIError)
		if !ok || apiErr.Code != "not_found" {
			t.Errorf("error = %v, want not_found", err)
		}
	})

	t.Run("toggle sequence ends consistent", func(t *testing.T) {
		ts := newTestFavoriteService()
		userID := uuid.New()
		l := ts.createListing(t, uuid.New(), "Item")

		if err := ts.svc.Favorite(ctx, userID, l.ID); err != nil {
			t.Fatalf("Favorite() error = %v", err)
		}
		if err := ts.svc.Unfavorite(ctx, userID, l.ID); err != nil {
			t.Fatalf("Unfavorite() error = %v", err)
		}
		if err := ts.svc.Favorite(ctx, userID, l.ID); err != nil {
			t.Fatalf("Favorite() error = %v", err)
		}

		saved, err := ts.svc.IsFavorited(ctx, userID, l.ID)
		if err != nil {
			t.Fatalf("IsFavorited() error = %v", err)
		}
		if !saved {
			t.Error("IsFavorited = false after final favorite")
		}
		if len(ts.favorites.favorites) != 1 {
			t.Errorf("favorite count = %d, want 1", len(ts.favorites.favorites))
		}
	})
}

func TestFavoriteService_Unfavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("unfavoriting something never saved is a no-op", func(t *testing.T) {
		ts := newTestFavoriteService()
		if err := ts.svc.Unfavorite(ctx, uuid.New(), uuid.New()); err != nil {
			t.Errorf("Unfavorite() error = %v", err)
		}
	})
}

func TestFavoriteService_ListByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches the listing to each favorite", func(t *testing.T) {
		ts := newTestFavoriteService()
		userID := uuid.New()
		l := ts.createListing(t, uuid.New(), "Mini fridge")
		if err := ts.svc.Favorite(ctx, userID, l.ID); err != nil {
			t.Fatalf("Favorite() error = %v", err)
		}

		favs, err := ts.svc.ListByUser(ctx, userID)
		if err != nil {
			t.Fatalf("ListByUser() error = %v", err)
		}
		if len(favs) != 1 {
			t.Fatalf("len = %d, want 1", len(favs))
		}
		if favs[0].Listing == nil || favs[0].Listing.Title != "Mini fridge" {
			t.Errorf("Listing = %+v", favs[0].Listing)
		}
	})
}
