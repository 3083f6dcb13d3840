package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etown-exchange/api/internal/models"
)

// FavoriteRepository defines the interface for favorite join records.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	GetByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
	Delete(ctx context.Context, userID, listingID uuid.UUID) error
}

type favoriteRepo struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepo{pool: pool}
}

// Create inserts a favorite. Uniqueness per (user, listing) is the
// service's responsibility via an existence check.
func (r *favoriteRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, listing_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}

	return r.pool.QueryRow(ctx, query,
		favorite.ID,
		favorite.UserID,
		favorite.ListingID,
	).Scan(&favorite.CreatedAt)
}

// GetByUserAndListing retrieves the favorite for a (user, listing) pair.
func (r *favoriteRepo) GetByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.Favorite, error) {
	query := `
		SELECT id, user_id, listing_id, created_at
		FROM favorites
		WHERE user_id = $1 AND listing_id = $2
		LIMIT 1`

	var f models.Favorite
	err := r.pool.QueryRow(ctx, query, userID, listingID).Scan(
		&f.ID,
		&f.UserID,
		&f.ListingID,
		&f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByUser retrieves a user's favorites with their live listings,
// newest favorite first.
func (r *favoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.listing_id, f.created_at,
		       l.id, l.user_id, l.title, l.description, l.price, l.image_url,
		       l.image_key, l.condition, l.category, l.seller, l.sold,
		       l.created_at, l.updated_at
		FROM favorites f
		JOIN listings l ON l.id = f.listing_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*models.Favorite
	for rows.Next() {
		var f models.Favorite
		var l models.Listing
		err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.ListingID,
			&f.CreatedAt,
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
		if err != nil {
			return nil, err
		}
		f.Listing = &l
		favorites = append(favorites, &f)
	}
	return favorites, rows.Err()
}

// Delete removes the favorite for a (user, listing) pair. Deleting a pair
// that does not exist is not an error.
func (r *favoriteRepo) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	return err
}
