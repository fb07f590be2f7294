package qr

import (
	"github.com/QRVault/QR-Backend/internal/db"
	"gorm.io/gorm"
)

// Init ensures the app_qr schema exists and migrates the qr_codes table.
// Must run after auth.Init so the owner foreign key has a target.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, "app_qr"); err != nil {
		return err
	}
	return d.AutoMigrate(&QRCode{})
}
