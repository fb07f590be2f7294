package qr

import (
	"github.com/QRVault/QR-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the QR endpoints on the parent router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	// Generation is open to anonymous callers; the handler persists only
	// when the cookie resolves to a live session.
	r.Post("/generate-qr", h.GenerateHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(h.Sessions))
		r.Get("/user/qr-codes", h.ListHandler)
		r.Delete("/user/delete-qr/{id}", h.DeleteHandler)
	})
}
