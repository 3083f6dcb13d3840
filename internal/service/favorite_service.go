package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/repository"
)

// FavoriteService manages per-user saved listings.
type FavoriteService interface {
	Favorite(ctx context.Context, userID, listingID uuid.UUID) error
	Unfavorite(ctx context.Context, userID, listingID uuid.UUID) error
	IsFavorited(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, listingRepo repository.ListingRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

// Favorite saves a listing for the user. An existing favorite for the same
// pair makes this a no-op, so repeated calls never stack duplicates.
func (s *favoriteService) Favorite(ctx context.Context, userID, listingID uuid.UUID) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return apierrors.NewNotFoundError("Listing")
	}

	existing, err := s.favoriteRepo.GetByUserAndListing(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return s.favoriteRepo.Create(ctx, &models.Favorite{
		UserID:    userID,
		ListingID: listingID,
	})
}

// Unfavorite removes a saved listing. Removing one that was never saved is
// a no-op.
func (s *favoriteService) Unfavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	return s.favoriteRepo.Delete(ctx, userID, listingID)
}

// IsFavorited reports whether the user has saved the listing.
func (s *favoriteService) IsFavorited(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	existing, err := s.favoriteRepo.GetByUserAndListing(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// ListByUser returns the user's favorites with the listing rows attached.
func (s *favoriteService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}
