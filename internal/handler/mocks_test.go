package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/catalog"
	"github.com/etown-exchange/api/internal/models"
	"github.com/etown-exchange/api/internal/service"
)

// --- Mock Services ---

type mockAuthService struct {
	signUpFunc      func(ctx context.Context, req service.SignUpRequest) (*models.User, error)
	verifyEmailFunc func(ctx context.Context, token string) error
	signInFunc      func(ctx context.Context, email, password string) (*models.User, error)
	getUserFunc     func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, req service.SignUpRequest) (*models.User, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) error {
	if m.verifyEmailFunc != nil {
		return m.verifyEmailFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *mockAuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return nil, nil
}

type mockListingService struct {
	browseFunc     func(ctx context.Context, req service.BrowseRequest) ([]*models.Listing, catalog.Page, error)
	getFunc        func(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	createFunc     func(ctx context.Context, req service.CreateListingRequest) (*models.Listing, error)
	updateFunc     func(ctx context.Context, userID, listingID uuid.UUID, req service.UpdateListingRequest) (*models.Listing, error)
	deleteFunc     func(ctx context.Context, userID, listingID uuid.UUID) error
	toggleSoldFunc func(ctx context.Context, userID, listingID uuid.UUID) (*models.Listing, error)
	myListingsFunc func(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, service.MyListingsStats, error)
}

func (m *mockListingService) Browse(ctx context.Context, req service.BrowseRequest) ([]*models.Listing, catalog.Page, error) {
	if m.browseFunc != nil {
		return m.browseFunc(ctx, req)
	}
	return nil, catalog.Page{}, nil
}

func (m *mockListingService) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockListingService) Create(ctx context.Context, req service.CreateListingRequest) (*models.Listing, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockListingService) Update(ctx context.Context, userID, listingID uuid.UUID, req service.UpdateListingRequest) (*models.Listing, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, listingID, req)
	}
	return nil, nil
}

func (m *mockListingService) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, listingID)
	}
	return nil
}

func (m *mockListingService) ToggleSold(ctx context.Context, userID, listingID uuid.UUID) (*models.Listing, error) {
	if m.toggleSoldFunc != nil {
		return m.toggleSoldFunc(ctx, userID, listingID)
	}
	return nil, nil
}

func (m *mockListingService) MyListings(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, service.MyListingsStats, error) {
	if m.myListingsFunc != nil {
		return m.myListingsFunc(ctx, userID, includeSold)
	}
	return nil, service.MyListingsStats{}, nil
}

type mockFavoriteService struct {
	favoriteFunc    func(ctx context.Context, userID, listingID uuid.UUID) error
	unfavoriteFunc  func(ctx context.Context, userID, listingID uuid.UUID) error
	isFavoritedFunc func(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	listByUserFunc  func(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
}

func (m *mockFavoriteService) Favorite(ctx context.Context, userID, listingID uuid.UUID) error {
	if m.favoriteFunc != nil {
		return m.favoriteFunc(ctx, userID, listingID)
	}
	return nil
}

func (m *mockFavoriteService) Unfavorite(ctx context.Context, userID, listingID uuid.UUID) error {
	if m.unfavoriteFunc != nil {
		return m.unfavoriteFunc(ctx, userID, listingID)
	}
	return nil
}

func (m *mockFavoriteService) IsFavorited(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if m.isFavoritedFunc != nil {
		return m.isFavoritedFunc(ctx, userID, listingID)
	}
	return false, nil
}

func (m *mockFavoriteService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockProfileService struct {
	getFunc        func(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	saveFunc       func(ctx context.Context, userID uuid.UUID, req service.SaveProfileRequest) (*models.Profile, error)
	publicCardFunc func(ctx context.Context, userID uuid.UUID) (*models.SellerCard, error)
}

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileService) Save(ctx context.Context, userID uuid.UUID, req service.SaveProfileRequest) (*models.Profile, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *mockProfileService) PublicCard(ctx context.Context, userID uuid.UUID) (*models.SellerCard, error) {
	if m.publicCardFunc != nil {
		return m.publicCardFunc(ctx, userID)
	}
	return nil, nil
}

type mockReportService struct {
	submitFunc func(ctx context.Context, req service.SubmitReportRequest) (*models.Report, error)
}

func (m *mockReportService) Submit(ctx context.Context, req service.SubmitReportRequest) (*models.Report, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, req)
	}
	return nil, nil
}
