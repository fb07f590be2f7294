package auth

import (
	"fmt"
	netmail "net/mail"
)

// MinPasswordLength applies to new passwords chosen on profile update.
const MinPasswordLength = 6

func ValidateEmail(email string) error {
	_, err := netmail.ParseAddress(email)
	return err
}

func ValidateNewPassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}
