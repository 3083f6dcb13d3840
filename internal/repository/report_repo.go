package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etown-exchange/api/internal/models"
)

// ReportRepository defines the interface for moderation reports. Reports
// are write-only from the application's point of view; review happens in
// an external workflow.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
}

type reportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepo{pool: pool}
}

// Create inserts a report with status pending and a server timestamp.
func (r *reportRepo) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, listing_id, listing_title, reported_by, reporter_email, reason, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}

	return r.pool.QueryRow(ctx, query,
		report.ID,
		report.ListingID,
		report.ListingTitle,
		report.ReportedBy,
		report.ReporterEmail,
		report.Reason,
		report.Details,
		report.Status,
	).Scan(&report.CreatedAt)
}
