package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/QRVault/QR-Backend/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the account endpoints. All collaborators are injected at
// startup; there is no package-level state.
type Handler struct {
	Users    *UserStore
	Sessions SessionStore
	Log      *zap.Logger

	// Production switches the session cookie to Secure / SameSite=None.
	Production bool
}

func NewHandler(users *UserStore, sessions SessionStore, log *zap.Logger, production bool) *Handler {
	return &Handler{Users: users, Sessions: sessions, Log: log, Production: production}
}

func (h *Handler) sessionCookie(token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "session_id",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.Production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	cookie := h.sessionCookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// startSession creates a session for the user and sets the cookie.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID string) error {
	token, err := h.Sessions.Create(r.Context(), userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, h.sessionCookie(token))
	return nil
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Name, email, and password are required.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hashing password", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred during registration.")
		return
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := h.Users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			utils.WriteError(w, http.StatusBadRequest, "User with this email already exists.")
			return
		}
		h.Log.Error("creating user", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred during registration.")
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.Log.Error("creating session", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred during registration.")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully!",
		"user":    user.Public(),
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	// Unknown email and wrong password answer identically so the endpoint
	// can't be used to probe which emails are registered.
	user, err := h.Users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Log.Error("looking up user", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred during login.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.Log.Error("creating session", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred during login.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful!",
		"user":    user.Public(),
	})
}

// LogoutHandler is best-effort: an absent or unknown session is not an error.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil && cookie.Value != "" {
		if err := h.Sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.Log.Warn("destroying session", zap.Error(err))
		}
	}
	h.clearSessionCookie(w)

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully.",
	})
}

func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "User not logged in")
		return
	}

	user, err := h.Users.FindByID(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		// Account deleted after the session was issued.
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("fetching profile", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while fetching profile.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "User not logged in")
		return
	}

	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.CurrentPassword == "" {
		utils.WriteError(w, http.StatusBadRequest, "Name, email, and current password are required.")
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if req.NewPassword != "" {
		if err := ValidateNewPassword(req.NewPassword); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	user, err := h.Users.FindByID(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("fetching user", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while updating profile.")
		return
	}

	// Nothing mutates unless the current password checks out.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid current password")
		return
	}

	updates := map[string]any{
		"name":  req.Name,
		"email": req.Email,
	}
	if req.NewPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			h.Log.Error("hashing password", zap.Error(err))
			utils.WriteError(w, http.StatusInternalServerError, "An error occurred while updating profile.")
			return
		}
		updates["password_hash"] = string(hashed)
	}

	if err := h.Users.Update(r.Context(), userID, updates); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			utils.WriteError(w, http.StatusConflict, "User with this email already exists.")
			return
		}
		h.Log.Error("updating user", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while updating profile.")
		return
	}

	utils.WriteJSON(w, http.StatusOK, PublicView{
		ID:    userID,
		Name:  req.Name,
		Email: req.Email,
	})
}

func (h *Handler) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusForbidden, "User not logged in")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		utils.WriteError(w, http.StatusUnauthorized, "Password confirmation required")
		return
	}

	user, err := h.Users.FindByID(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("fetching user", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while deleting account.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	// Deleting the user row cascades to the owned qr_codes via the FK.
	if err := h.Users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("deleting user", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "An error occurred while deleting account.")
		return
	}

	if err := h.Sessions.DestroyAllForUser(r.Context(), userID); err != nil {
		h.Log.Warn("purging sessions", zap.Error(err), zap.String("user_id", userID))
	}
	h.clearSessionCookie(w)

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Account deleted successfully.",
	})
}
