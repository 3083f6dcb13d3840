package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etown-exchange/api/internal/models"
)

// ProfileRepository defines the interface for seller profile operations.
// The service distinguishes create from update by an existence check.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
}

type profileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepo{pool: pool}
}

const profileColumns = `
	user_id, email, first_name, last_name, profile_picture, bio,
	instagram_handle, snapchat_handle, preferred_meeting_location,
	custom_meeting_location, show_last_name, show_instagram, show_snapchat,
	created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.UserID,
		&p.Email,
		&p.FirstName,
		&p.LastName,
		&p.ProfilePicture,
		&p.Bio,
		&p.InstagramHandle,
		&p.SnapchatHandle,
		&p.PreferredMeetingLocation,
		&p.CustomMeetingLocation,
		&p.ShowLastName,
		&p.ShowInstagram,
		&p.ShowSnapchat,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get retrieves a profile by user id.
func (r *profileRepo) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

// Create inserts a new profile.
func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, email, first_name, last_name, profile_picture, bio,
			instagram_handle, snapchat_handle, preferred_meeting_location,
			custom_meeting_location, show_last_name, show_instagram, show_snapchat
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Email,
		profile.FirstName,
		profile.LastName,
		profile.ProfilePicture,
		profile.Bio,
		profile.InstagramHandle,
		profile.SnapchatHandle,
		profile.PreferredMeetingLocation,
		profile.CustomMeetingLocation,
		profile.ShowLastName,
		profile.ShowInstagram,
		profile.ShowSnapchat,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

// Update replaces the mutable fields of an existing profile.
func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			first_name = $2, last_name = $3, profile_picture = $4, bio = $5,
			instagram_handle = $6, snapchat_handle = $7,
			preferred_meeting_location = $8, custom_meeting_location = $9,
			show_last_name = $10, show_instagram = $11, show_snapchat = $12,
			updated_at = now()
		WHERE user_id = $1
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.ProfilePicture,
		profile.Bio,
		profile.InstagramHandle,
		profile.SnapchatHandle,
		profile.PreferredMeetingLocation,
		profile.CustomMeetingLocation,
		profile.ShowLastName,
		profile.ShowInstagram,
		profile.ShowSnapchat,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}
