package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// FirstName and LastName make up the display name.
	FirstName string
	LastName  string

	// Email is the user's email address (unique, normalized to lower case).
	Email string

	// Phone is the user's phone number (unique).
	Phone string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Settings holds budgeting preferences.
	Settings Settings

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// Settings holds a user's budgeting configuration.
type Settings struct {
	// Limits maps each category to a spending limit.
	// A nil map means the user never configured limits; the category
	// summary then omits scores entirely.
	Limits map[Category]decimal.Decimal

	// Income is the user's declared income, nil when unset.
	Income *decimal.Decimal
}

// NewUser creates a new User with a generated ID and creation timestamp.
func NewUser(firstName, lastName, email, phone, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        NormalizeEmail(email),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// DisplayName returns "First Last".
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lower-cases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
