package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/models"
)

// --- Mock Repositories ---

type mockUserRepo struct {
	users   map[uuid.UUID]*models.User
	byEmail map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:   make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepo) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	user.EmailVerified = true
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

type mockProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (m *mockProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return m.profiles[userID], nil
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	if _, ok := m.profiles[profile.UserID]; !ok {
		return fmt.Errorf("profile %s not found", profile.UserID)
	}
	profile.UpdatedAt = time.Now()
	m.profiles[profile.UserID] = profile
	return nil
}

type mockListingRepo struct {
	listings map[uuid.UUID]*models.Listing
	order    []uuid.UUID // insertion order, newest last
}

func newMockListingRepo() *mockListingRepo {
	return &mockListingRepo{listings: make(map[uuid.UUID]*models.Listing)}
}

func (m *mockListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	m.listings[listing.ID] = listing
	m.order = append(m.order, listing.ID)
	return nil
}

func (m *mockListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return m.listings[id], nil
}

func (m *mockListingRepo) ListActive(ctx context.Context) ([]*models.Listing, error) {
	var result []*models.Listing
	for i := len(m.order) - 1; i >= 0; i-- {
		l, ok := m.listings[m.order[i]]
		if ok && !l.Sold {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockListingRepo) ListByUser(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, error) {
	var result []*models.Listing
	for i := len(m.order) - 1; i >= 0; i-- {
		l, ok := m.listings[m.order[i]]
		if !ok || l.UserID != userID {
			continue
		}
		if l.Sold && !includeSold {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (m *mockListingRepo) Update(ctx context.Context, listing *models.Listing) error {
	if _, ok := m.listings[listing.ID]; !ok {
		return fmt.Errorf("listing %s not found", listing.ID)
	}
	listing.UpdatedAt = time.Now()
	m.listings[listing.ID] = listing
	return nil
}

func (m *mockListingRepo) SetSold(ctx context.Context, id uuid.UUID, sold bool) error {
	l, ok := m.listings[id]
	if !ok {
		return fmt.Errorf("listing %s not found", id)
	}
	l.Sold = sold
	return nil
}

func (m *mockListingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.listings, id)
	return nil
}

type mockFavoriteRepo struct {
	favorites map[string]*models.Favorite // userID_listingID
	listings  *mockListingRepo
}

func newMockFavoriteRepo(listings *mockListingRepo) *mockFavoriteRepo {
	return &mockFavoriteRepo{
		favorites: make(map[string]*models.Favorite),
		listings:  listings,
	}
}

func favKey(userID, listingID uuid.UUID) string {
	return userID.String() + "_" + listingID.String()
}

func (m *mockFavoriteRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	favorite.CreatedAt = time.Now()
	m.favorites[favKey(favorite.UserID, favorite.ListingID)] = favorite
	return nil
}

func (m *mockFavoriteRepo) GetByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.Favorite, error) {
	return m.favorites[favKey(userID, listingID)], nil
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	var result []*models.Favorite
	for _, f := range m.favorites {
		if f.UserID != userID {
			continue
		}
		if m.listings != nil {
			f.Listing = m.listings.listings[f.ListingID]
		}
		result = append(result, f)
	}
	return result, nil
}

func (m *mockFavoriteRepo) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	delete(m.favorites, favKey(userID, listingID))
	return nil
}

type mockReportRepo struct {
	reports []*models.Report
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{}
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}
	report.CreatedAt = time.Now()
	m.reports = append(m.reports, report)
	return nil
}

// --- Mock Infrastructure ---

type mockTokenStore struct {
	values map[string]string
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{values: make(map[string]string)}
}

func (m *mockTokenStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.values[key] = fmt.Sprint(value)
	return nil
}

func (m *mockTokenStore) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *mockTokenStore) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type mockMailer struct {
	sent []string // recipient addresses
	err  error
}

func (m *mockMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockObjectStore struct {
	objects   map[string]bool
	uploadErr error
	deleteErr error
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{objects: make(map[string]bool)}
}

func (m *mockObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.objects[key] = true
	return "https://cdn.test/" + key, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
