package qr

import (
	"time"

	"github.com/QRVault/QR-Backend/internal/auth"
)

// QRCode is one generated code owned by an account. QRImage holds the
// canonical base64 PNG data-URI representation.
type QRCode struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"-"`
	QRText    string    `gorm:"not null" json:"qr_text"`
	QRImage   string    `gorm:"not null" json:"qr_image"`
	CreatedAt time.Time `gorm:"not null" json:"timestamp"`

	Owner auth.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QRCode) TableName() string { return "app_qr.qr_codes" }
