package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/catalog"
	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/repository"
	"github.com/etown-exchange/api/internal/storage"
)

// ListingService defines the listing lifecycle and browse operations.
type ListingService interface {
	Browse(ctx context.Context, req BrowseRequest) ([]*models.Listing, catalog.Page, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Create(ctx context.Context, req CreateListingRequest) (*models.Listing, error)
	Update(ctx context.Context, userID, listingID uuid.UUID, req UpdateListingRequest) (*models.Listing, error)
	Delete(ctx context.Context, userID, listingID uuid.UUID) error
	ToggleSold(ctx context.Context, userID, listingID uuid.UUID) (*models.Listing, error)
	MyListings(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, MyListingsStats, error)
}

// BrowseRequest is the browse-page selection.
type BrowseRequest struct {
	Query    string
	Category string
	Page     int
	PerPage  int
}

// ImageUpload is an image file attached to a create or update request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateListingRequest is the request for posting a new listing.
type CreateListingRequest struct {
	UserID      uuid.UUID
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"required,min=1"`
	Price       string `validate:"required,min=1,max=20"`
	Category    string `validate:"required"`
	Condition   string `validate:"required"`
	Image       *ImageUpload
}

// UpdateListingRequest carries the mutable fields of a listing. Sold status
// is not part of this flow.
type UpdateListingRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"required,min=1"`
	Price       string `validate:"required,min=1,max=20"`
	Category    string `validate:"required"`
	Condition   string `validate:"required"`
	Image       *ImageUpload
}

// MyListingsStats summarizes a user's listings for the stats banner.
// TotalValue sums only non-sold listings.
type MyListingsStats struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

type listingService struct {
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	store       storage.ObjectStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewListingService creates a new listing service.
func NewListingService(
	listingRepo repository.ListingRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStore,
	logger *slog.Logger,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// Browse fetches all non-sold listings newest-first, applies the text and
// category filters, and paginates the filtered set.
func (s *listingService) Browse(ctx context.Context, req BrowseRequest) ([]*models.Listing, catalog.Page, error) {
	listings, err := s.listingRepo.ListActive(ctx)
	if err != nil {
		return nil, catalog.Page{}, err
	}

	filtered := catalog.Filter{Query: req.Query, Category: req.Category}.Apply(listings)

	perPage := catalog.NormalizePerPage(req.PerPage)
	page := catalog.Paginate(len(filtered), req.Page, perPage)

	return filtered[page.Start:page.End], page, nil
}

// Get retrieves a single listing by id.
func (s *listingService) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apierrors.NewNotFoundError("Listing")
	}
	return listing, nil
}

// Create validates enums, uploads the attached image if any, and writes the
// listing with the owner's display identity. An upload that succeeds before
// a failed write leaves an orphaned object; that window is accepted.
func (s *listingService) Create(ctx context.Context, req CreateListingRequest) (*models.Listing, error) {
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, apierrors.NewValidationError("category", "Unknown category")
	}
	condition := models.Condition(req.Condition)
	if !condition.Valid() {
		return nil, apierrors.NewValidationError("condition", "Unknown condition")
	}

	seller, err := s.sellerName(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    &category,
		Condition:   &condition,
		Seller:      &seller,
	}

	if req.Image != nil {
		key := storage.ListingImageKey(s.now().Unix(), req.Image.Filename)
		url, err := s.store.Upload(ctx, key, req.Image.ContentType, req.Image.Body)
		if err != nil {
			return nil, err
		}
		listing.ImageURL = &url
		listing.ImageKey = &key
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Update replaces the mutable fields of an owned listing. A new image
// triggers a best-effort delete of the previous object before the upload.
func (s *listingService) Update(ctx context.Context, userID, listingID uuid.UUID, req UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, apierrors.NewValidationError("category", "Unknown category")
	}
	condition := models.Condition(req.Condition)
	if !condition.Valid() {
		return nil, apierrors.NewValidationError("condition", "Unknown condition")
	}

	if req.Image != nil {
		if listing.ImageKey != nil {
			s.deleteImage(ctx, listingID, *listing.ImageKey)
		}
		key := storage.ListingImageKey(s.now().Unix(), req.Image.Filename)
		url, err := s.store.Upload(ctx, key, req.Image.ContentType, req.Image.Body)
		if err != nil {
			return nil, err
		}
		listing.ImageURL = &url
		listing.ImageKey = &key
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.Price = req.Price
	listing.Category = &category
	listing.Condition = &condition

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes an owned listing. The document row is deleted first; the
// image object delete afterwards is best-effort and never fails the call.
func (s *listingService) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	listing, err := s.ownedListing(ctx, userID, listingID)
	if err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	if listing.ImageKey != nil {
		s.deleteImage(ctx, listingID, *listing.ImageKey)
	}
	return nil
}

// deleteImage removes a stored listing image, best-effort. Keys outside the
// listing image prefix are never deleted; a row carrying one is logged and
// the object left alone.
func (s *listingService) deleteImage(ctx context.Context, listingID uuid.UUID, key string) {
	if !storage.IsListingImageKey(key) {
		s.logger.Warn("refusing to delete object outside the listing image prefix",
			slog.String("listing_id", listingID.String()),
			slog.String("key", key),
		)
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete listing image",
			slog.String("listing_id", listingID.String()),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// ToggleSold flips the sold flag via a partial update. Local state follows
// the write; nothing is flipped optimistically.
func (s *listingService) ToggleSold(ctx context.Context, userID, listingID uuid.UUID) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.SetSold(ctx, listingID, !listing.Sold); err != nil {
		return nil, err
	}
	listing.Sold = !listing.Sold
	return listing, nil
}

// MyListings returns the user's listings with the stats banner numbers.
func (s *listingService) MyListings(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, MyListingsStats, error) {
	listings, err := s.listingRepo.ListByUser(ctx, userID, includeSold)
	if err != nil {
		return nil, MyListingsStats{}, err
	}

	stats := MyListingsStats{
		Count:      len(listings),
		TotalValue: models.TotalValue(listings),
	}
	return listings, stats, nil
}

// ownedListing loads a listing and checks the caller owns it.
func (s *listingService) ownedListing(ctx context.Context, userID, listingID uuid.UUID) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apierrors.NewNotFoundError("Listing")
	}
	if listing.UserID != userID {
		return nil, apierrors.ErrForbidden
	}
	return listing, nil
}

// sellerName resolves the display identity stored on new listings: the
// profile's public name when one exists, otherwise the account email.
func (s *listingService) sellerName(ctx context.Context, userID uuid.UUID) (string, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile != nil {
		return profile.DisplayName(), nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apierrors.ErrUnauthorized
	}
	return user.Email, nil
}
