package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/repository"
)

// ReportService accepts listing reports for moderation.
type ReportService interface {
	Submit(ctx context.Context, req SubmitReportRequest) (*models.Report, error)
}

// SubmitReportRequest is a report filed against a listing.
type SubmitReportRequest struct {
	ListingID uuid.UUID
	UserID    uuid.UUID
	Reason    string `validate:"required"`
	Details   string
}

type reportService struct {
	reportRepo  repository.ReportRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

// NewReportService creates a new report service.
func NewReportService(
	reportRepo repository.ReportRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

// Submit files a pending report against a listing, snapshotting the listing
// title and reporter email at submission time. Owners cannot report their
// own listings.
func (s *reportService) Submit(ctx context.Context, req SubmitReportRequest) (*models.Report, error) {
	reason := models.ReportReason(req.Reason)
	if !reason.Valid() {
		return nil, apierrors.NewValidationError("reason", "Unknown report reason")
	}

	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, apierrors.NewNotFoundError("Listing")
	}
	if listing.UserID == req.UserID {
		return nil, apierrors.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.ErrUnauthorized
	}

	report := &models.Report{
		ListingID:     req.ListingID,
		ListingTitle:  listing.Title,
		ReportedBy:    req.UserID,
		ReporterEmail: user.Email,
		Reason:        reason,
		Status:        models.ReportStatusPending,
	}
	if details := strings.TrimSpace(req.Details); details != "" {
		report.Details = &details
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
