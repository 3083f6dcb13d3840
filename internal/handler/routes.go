package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/etown-exchange/api/internal/pkg/response"
)

// RouterConfig collects the handlers and middleware the API router needs.
type RouterConfig struct {
	Auth      *AuthHandler
	Listings  *ListingHandler
	Favorites *FavoriteHandler
	Reports   *ReportHandler
	Profiles  *ProfileHandler

	// RequireAuth rejects requests without a valid session.
	RequireAuth func(http.Handler) http.Handler
	// OptionalAuth loads the session user when present but never rejects.
	OptionalAuth func(http.Handler) http.Handler
}

// APIRouter assembles the /v1 route tree.
func APIRouter(c RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		response.OK(w, map[string]string{
			"name":    "Etown Exchange API",
			"version": "1.0.0",
		})
	})

	r.Mount("/auth", c.Auth.Routes(c.RequireAuth))

	r.Route("/listings", func(r chi.Router) {
		// Browse and item detail work without a session; a session fills
		// in the favorited flag.
		r.With(c.OptionalAuth).Get("/", c.Listings.Browse)
		r.With(c.OptionalAuth).Get("/{id}", c.Listings.Get)

		r.Group(func(r chi.Router) {
			r.Use(c.RequireAuth)
			r.Post("/", c.Listings.Create)
			r.Put("/{id}", c.Listings.Update)
			r.Delete("/{id}", c.Listings.Delete)
			r.Post("/{id}/sold", c.Listings.ToggleSold)
			r.Put("/{id}/favorite", c.Favorites.Favorite)
			r.Delete("/{id}/favorite", c.Favorites.Unfavorite)
			r.Post("/{id}/report", c.Reports.Submit)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(c.RequireAuth)
		r.Get("/my/listings", c.Listings.MyListings)
		r.Get("/my/favorites", c.Favorites.MyFavorites)
		r.Get("/profile", c.Profiles.Get)
		r.Put("/profile", c.Profiles.Save)
	})

	r.With(c.OptionalAuth).Get("/users/{id}/profile", c.Profiles.PublicCard)

	return r
}
