package auth

import (
	"github.com/QRVault/QR-Backend/internal/db"
	"gorm.io/gorm"
)

// Init ensures the app_auth schema exists and migrates the account tables.
func Init(d *gorm.DB) error {
	if err := db.EnsureSchema(d, "app_auth"); err != nil {
		return err
	}
	return d.AutoMigrate(&User{}, &Session{})
}
