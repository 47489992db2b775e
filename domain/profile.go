// domain/profile.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// Profile holds per-account display data, created on signup and mutated only
// by its owner.
type Profile struct {
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Notifications bool      `json:"notifications"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// defaultPhoneRegion is assumed for numbers entered without a country code.
const defaultPhoneRegion = "US"

// NormalizePhone parses a user-entered phone number and renders it in E.164.
// An empty input clears the field and is not an error.
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", Invalid("phone", "not a parseable phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", Invalid("phone", "not a valid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
