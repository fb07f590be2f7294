package qr

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound covers both a missing record and one owned by someone else;
// callers must not be able to tell the two apart.
var ErrNotFound = errors.New("qr code not found")

// Store is the durable table of generated codes.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, code *QRCode) error {
	return s.db.WithContext(ctx).Create(code).Error
}

// ListByOwner returns the account's codes, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]QRCode, error) {
	var codes []QRCode
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

// DeleteOwned removes one code, but only if ownerID actually owns it.
func (s *Store) DeleteOwned(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&QRCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
