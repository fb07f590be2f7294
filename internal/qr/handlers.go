package qr

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/QRVault/QR-Backend/internal/middleware"
	"github.com/QRVault/QR-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves the QR generation and record endpoints.
type Handler struct {
	Codes    *Store
	Sessions middleware.SessionFetcher
	Log      *zap.Logger
}

func NewHandler(codes *Store, sessions middleware.SessionFetcher, log *zap.Logger) *Handler {
	return &Handler{Codes: codes, Sessions: sessions, Log: log}
}

// GenerateHandler encodes the posted text and returns the image. Anyone may
// generate; only callers with a live session get the result persisted.
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == "" {
		utils.WriteError(w, http.StatusBadRequest, "No data provided")
		return
	}

	image, err := Encode(req.Data)
	if err != nil {
		h.Log.Error("encoding qr code", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while generating QR code.")
		return
	}

	if userID, ok := h.resolveSession(r); ok {
		code := QRCode{
			ID:        uuid.NewString(),
			UserID:    userID,
			QRText:    req.Data,
			QRImage:   image,
			CreatedAt: time.Now().UTC(),
		}
		if err := h.Codes.Create(r.Context(), &code); err != nil {
			h.Log.Error("saving qr code", zap.Error(err), zap.String("user_id", userID))
			utils.WriteError(w, http.StatusInternalServerError, "An error occurred while generating QR code.")
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"qr_code": image})
}

// resolveSession reads the session cookie if present. Generation never fails
// on a bad session, it just skips persistence.
func (h *Handler) resolveSession(r *http.Request) (string, bool) {
	cookie, err := r.Cookie("session_id")
	if err != nil || cookie.Value == "" {
		return "", false
	}
	session, err := h.Sessions.Resolve(r.Context(), cookie.Value)
	if err != nil || session.ExpiresAt.Before(time.Now()) {
		return "", false
	}
	return session.UserID, true
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "User not logged in")
		return
	}

	codes, err := h.Codes.ListByOwner(r.Context(), userID)
	if err != nil {
		h.Log.Error("listing qr codes", zap.Error(err), zap.String("user_id", userID))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while fetching QR codes.")
		return
	}
	if codes == nil {
		codes = []QRCode{}
	}

	utils.WriteJSON(w, http.StatusOK, codes)
}

func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "User not logged in")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "QR code id is required")
		return
	}

	if err := h.Codes.DeleteOwned(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "QR code not found")
			return
		}
		h.Log.Error("deleting qr code", zap.Error(err), zap.String("user_id", userID))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while deleting QR code.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "QR code deleted successfully.",
	})
}
