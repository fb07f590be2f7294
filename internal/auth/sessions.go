package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/QRVault/QR-Backend/internal/utils"
	"gorm.io/gorm"
)

// ErrSessionNotFound is returned when a token resolves to nothing, either
// because it never existed or because it expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore manages the token -> account mapping behind the session
// cookie. Destroy is idempotent: destroying an absent token is not an error.
type SessionStore interface {
	Create(ctx context.Context, userID string) (token string, err error)
	Resolve(ctx context.Context, token string) (utils.SessionData, error)
	Destroy(ctx context.Context, token string) error
	DestroyAllForUser(ctx context.Context, userID string) error
}

// newToken returns 32 random bytes, base64url-encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GormSessionStore keeps sessions in the app_auth.sessions table.
type GormSessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewGormSessionStore(db *gorm.DB, ttl time.Duration) *GormSessionStore {
	return &GormSessionStore{db: db, ttl: ttl}
}

func (s *GormSessionStore) Create(ctx context.Context, userID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	session := Session{
		SessionID: token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (s *GormSessionStore) Resolve(ctx context.Context, token string) (utils.SessionData, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "session_id = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.SessionData{}, ErrSessionNotFound
	}
	if err != nil {
		return utils.SessionData{}, err
	}

	if session.ExpiresAt.Before(time.Now()) {
		// Lazy cleanup; the caller still gets a not-found.
		s.db.WithContext(ctx).Where("session_id = ?", token).Delete(&Session{})
		return utils.SessionData{}, ErrSessionNotFound
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *GormSessionStore) Destroy(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("session_id = ?", token).Delete(&Session{}).Error
}

func (s *GormSessionStore) DestroyAllForUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Session{}).Error
}
