package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/middleware"
	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/pkg/response"
	"github.com/etown-exchange/api/internal/service"
)

// FavoriteHandler handles favorite HTTP requests.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Favorite handles PUT /v1/listings/{id}/favorite
func (h *FavoriteHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	userID, listingID, ok := h.params(w, r)
	if !ok {
		return
	}

	if err := h.favoriteService.Favorite(r.Context(), userID, listingID); err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, map[string]bool{"favorited": true})
}

// Unfavorite handles DELETE /v1/listings/{id}/favorite
func (h *FavoriteHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	userID, listingID, ok := h.params(w, r)
	if !ok {
		return
	}

	if err := h.favoriteService.Unfavorite(r.Context(), userID, listingID); err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, map[string]bool{"favorited": false})
}

// MyFavorites handles GET /v1/my/favorites
func (h *FavoriteHandler) MyFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	favorites, err := h.favoriteService.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	if favorites == nil {
		favorites = []*models.Favorite{}
	}
	response.OK(w, favorites)
}

func (h *FavoriteHandler) params(w http.ResponseWriter, r *http.Request) (userID, listingID uuid.UUID, ok bool) {
	userID, ok = middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return uuid.Nil, uuid.Nil, false
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid listing id"))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, listingID, true
}
