package router

import (
	"net/http"

	"github.com/SubhamSahu809/ProRental/internal/handler"
	"github.com/SubhamSahu809/ProRental/internal/middleware"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/SubhamSahu809/ProRental/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
)

// Deps groups everything the router mounts.
type Deps struct {
	Listings *handler.ListingHandler
	Reviews  *handler.ReviewHandler
	Users    *handler.UserHandler
	Auth     *middleware.Authenticator
	Metrics  *metrics.Manager
	Logger   *logger.Logger
	Origins  []string
}

// New builds the chi router with the full API surface.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.CORS(d.Origins))
	r.Use(middleware.Metrics(d.Metrics))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Welcome to the ProRental API"}`))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", d.Users.HandleSignup)
		r.Post("/login", d.Users.HandleLogin)
		r.With(d.Auth.Optional).Get("/logout", d.Users.HandleLogout)
		r.With(d.Auth.Require).Get("/me", d.Users.HandleMe)
	})

	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", d.Listings.HandleIndex)
		r.With(d.Auth.Require).Post("/", d.Listings.HandleCreate)

		// Registered before /{id} so "owner" is never parsed as an id.
		r.With(d.Auth.Require).Get("/owner/properties", d.Listings.HandleOwnerListings)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", d.Listings.HandleShow)
			r.With(d.Auth.Require).Get("/edit", d.Listings.HandleEdit)
			r.With(d.Auth.Require).Put("/", d.Listings.HandleUpdate)
			r.With(d.Auth.Require).Delete("/", d.Listings.HandleDelete)

			r.With(d.Auth.Require).Post("/reviews", d.Reviews.HandleCreate)
			r.With(d.Auth.Require).Delete("/reviews/{reviewId}", d.Reviews.HandleDelete)
		})
	})

	return r
}
