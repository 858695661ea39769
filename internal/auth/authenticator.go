package auth

import (
	"context"

	"github.com/mmynk/sharedledger/internal/models"
)

// Authenticator resolves login credentials to a stored user.
type Authenticator interface {
	// Authenticate returns ErrInvalidCredentials when the email is unknown or
	// the credential does not match.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
