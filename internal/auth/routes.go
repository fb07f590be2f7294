package auth

import (
	"github.com/QRVault/QR-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the account endpoints on the parent router. The
// credential endpoints optionally sit behind a per-IP rate limiter.
func (h *Handler) RegisterRoutes(r chi.Router, limiter *middleware.RateLimiter) {
	if limiter != nil {
		r.With(limiter.Handler).Post("/register", h.RegisterHandler)
		r.With(limiter.Handler).Post("/login", h.LoginHandler)
	} else {
		r.Post("/register", h.RegisterHandler)
		r.Post("/login", h.LoginHandler)
	}
	r.Post("/logout", h.LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(h.Sessions))
		r.Get("/user/profile", h.ProfileHandler)
		r.Post("/user/update-profile", h.UpdateProfileHandler)
		r.Delete("/user/delete-account", h.DeleteAccountHandler)
	})
}
