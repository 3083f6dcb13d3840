package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/middleware"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/pkg/response"
	"github.com/etown-exchange/api/internal/service"
)

// ReportHandler handles listing report HTTP requests.
type ReportHandler struct {
	reportService service.ReportService
	validate      *validator.Validate
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validate:      validator.New(),
	}
}

// SubmitReportHTTPRequest is the HTTP request body for reporting a listing.
type SubmitReportHTTPRequest struct {
	Reason  string `json:"reason" validate:"required"`
	Details string `json:"details"`
}

// Submit handles POST /v1/listings/{id}/report
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid listing id"))
		return
	}

	var req SubmitReportHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("reason", "A report reason is required"))
		return
	}

	report, err := h.reportService.Submit(r.Context(), service.SubmitReportRequest{
		ListingID: listingID,
		UserID:    userID,
		Reason:    req.Reason,
		Details:   req.Details,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.CountReportFiled()
	response.Created(w, report)
}
