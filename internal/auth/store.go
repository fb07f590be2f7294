package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when a create or update would violate the
// unique index on users.email.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned when a lookup or delete matches no account.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the credential store: plain CRUD over app_auth.users.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the given column updates to one account.
func (s *UserStore) Update(ctx context.Context, id string, updates map[string]any) error {
	err := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates).Error
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// Delete removes the account row. Owned qr_codes go with it via the
// ON DELETE CASCADE foreign key; sessions are purged by the caller since
// they may live outside postgres.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres 23505 error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
