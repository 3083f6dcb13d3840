package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etown-exchange/api/internal/models"
)

// ListingRepository defines the interface for listing data operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	ListActive(ctx context.Context) ([]*models.Listing, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	SetSold(ctx context.Context, id uuid.UUID, sold bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type listingRepo struct {
	pool *pgxpool.Pool
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepo{pool: pool}
}

const listingColumns = `
	id, user_id, title, description, price, image_url, image_key,
	condition, category, seller, sold, created_at, updated_at`

func scanListing(row pgx.Row) (*models.Listing, error) {
	var l models.Listing
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Title,
		&l.Description,
		&l.Price,
		&l.ImageURL,
		&l.ImageKey,
		&l.Condition,
		&l.Category,
		&l.Seller,
		&l.Sold,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectListings(rows pgx.Rows) ([]*models.Listing, error) {
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Create inserts a new listing. created_at is assigned by the store and
// immutable thereafter.
func (r *listingRepo) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, user_id, title, description, price, image_url, image_key, condition, category, seller, sold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}

	return r.pool.QueryRow(ctx, query,
		listing.ID,
		listing.UserID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.ImageURL,
		listing.ImageKey,
		listing.Condition,
		listing.Category,
		listing.Seller,
		listing.Sold,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
}

// GetByID retrieves a listing by its UUID.
func (r *listingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	query := `SELECT` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(r.pool.QueryRow(ctx, query, id))
}

// ListActive retrieves all non-sold listings ordered by creation time,
// newest first.
func (r *listingRepo) ListActive(ctx context.Context) ([]*models.Listing, error) {
	query := `SELECT` + listingColumns + ` FROM listings WHERE sold = FALSE ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// ListByUser retrieves a user's listings, newest first, optionally
// including sold items.
func (r *listingRepo) ListByUser(ctx context.Context, userID uuid.UUID, includeSold bool) ([]*models.Listing, error) {
	query := `SELECT` + listingColumns + ` FROM listings WHERE user_id = $1`
	if !includeSold {
		query += ` AND sold = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// Update replaces the mutable fields of a listing. Sold status and owner
// are not touched by this path.
func (r *listingRepo) Update(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings SET
			title = $2, description = $3, price = $4, image_url = $5,
			image_key = $6, condition = $7, category = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.ImageURL,
		listing.ImageKey,
		listing.Condition,
		listing.Category,
	).Scan(&listing.UpdatedAt)
}

// SetSold flips the sold flag via a partial update.
func (r *listingRepo) SetSold(ctx context.Context, id uuid.UUID, sold bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE listings SET sold = $2, updated_at = now() WHERE id = $1`, id, sold)
	return err
}

// Delete removes a listing row. The associated image object is cleaned up
// by the service afterwards, best-effort.
func (r *listingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	return err
}
