package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/middleware"
	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/pkg/response"
	"github.com/etown-exchange/api/internal/service"
)

// maxImageSize bounds listing image uploads.
const maxImageSize = 10 << 20 // 10 MiB

// ListingHandler handles listing HTTP requests.
type ListingHandler struct {
	listingService  service.ListingService
	favoriteService service.FavoriteService
	profileService  service.ProfileService
	validate        *validator.Validate
	logger          *slog.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(
	listingService service.ListingService,
	favoriteService service.FavoriteService,
	profileService service.ProfileService,
	logger *slog.Logger,
) *ListingHandler {
	return &ListingHandler{
		listingService:  listingService,
		favoriteService: favoriteService,
		profileService:  profileService,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Browse handles GET /v1/listings
func (h *ListingHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	listings, pg, err := h.listingService.Browse(r.Context(), service.BrowseRequest{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	if listings == nil {
		listings = []*models.Listing{}
	}
	response.JSONWithMeta(w, http.StatusOK, listings, &response.Meta{
		Page:       pg.Number,
		PerPage:    pg.PerPage,
		Total:      pg.Total,
		TotalPages: pg.TotalPages,
		Pages:      pg.Window(),
	})
}

// listingDetail is the item page payload: the listing plus the seller card
// and, for signed-in viewers, whether they favorited it.
type listingDetail struct {
	Listing   *models.Listing    `json:"listing"`
	Seller    *models.SellerCard `json:"seller,omitempty"`
	Favorited bool               `json:"favorited"`
}

// Get handles GET /v1/listings/{id}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid listing id"))
		return
	}

	listing, err := h.listingService.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	detail := listingDetail{Listing: listing}

	// The seller card is best-effort. A seller without a profile is normal
	// and just omits the card; anything else gets logged.
	if card, err := h.profileService.PublicCard(r.Context(), listing.UserID); err == nil {
		detail.Seller = card
	} else if !apierrors.IsNotFound(err) {
		h.logger.Warn("failed to load seller card", "listing_id", id, "error", err)
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		if saved, err := h.favoriteService.IsFavorited(r.Context(), userID, id); err == nil {
			detail.Favorited = saved
		}
	}

	response.OK(w, detail)
}

// Create handles POST /v1/listings (multipart form)
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid multipart form"))
		return
	}

	req := service.CreateListingRequest{
		UserID:      userID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Condition:   r.FormValue("condition"),
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("listing", "Title, description, price, category and condition are required"))
		return
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		req.Image = &service.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	listing, err := h.listingService.Create(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.CountListingCreated()
	response.Created(w, listing)
}

// Update handles PUT /v1/listings/{id} (multipart form)
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid listing id"))
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid multipart form"))
		return
	}

	req := service.UpdateListingRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Condition:   r.FormValue("condition"),
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("listing", "Title, description, price, category and condition are required"))
		return
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		req.Image = &service.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	listing, err := h.listingService.Update(r.Context(), userID, id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, listing)
}

// Delete handles DELETE /v1/listings/{id}
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid listing id"))
		return
	}

	if err := h.listingService.Delete(r.Context(), userID, id); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

// ToggleSold handles POST /v1/listings/{id}/sold
func (h *ListingHandler) ToggleSold(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid listing id"))
		return
	}

	listing, err := h.listingService.ToggleSold(r.Context(), userID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, listing)
}

// myListingsPayload is the "my listings" page payload.
type myListingsPayload struct {
	Listings []*models.Listing       `json:"listings"`
	Stats    service.MyListingsStats `json:"stats"`
}

// MyListings handles GET /v1/my/listings?include_sold=true
func (h *ListingHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	includeSold := r.URL.Query().Get("include_sold") == "true"

	listings, stats, err := h.listingService.MyListings(r.Context(), userID, includeSold)
	if err != nil {
		response.Error(w, err)
		return
	}

	if listings == nil {
		listings = []*models.Listing{}
	}
	response.OK(w, myListingsPayload{Listings: listings, Stats: stats})
}
