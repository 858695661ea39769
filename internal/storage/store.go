// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/sharedledger/internal/models"
)

var (
	// ErrNotFound is returned when a user, group or transaction does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique field (email, phone, group name) is taken.
	ErrConflict = errors.New("already exists")
	// ErrNotInvited is returned when answering an invitation that does not exist.
	ErrNotInvited = errors.New("no pending invitation")
)

// TransactionFilter narrows ListTransactions. Zero fields match everything.
type TransactionFilter struct {
	GroupID string
	Type    models.TransactionType
	// ActorID matches the spender, receiver or sender.
	ActorID string
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user. Returns ErrConflict if the email or
	// phone is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByEmails returns the users registered under the given emails,
	// keyed by normalized email. Unknown emails are omitted.
	GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error)

	// UpdateUserSettings replaces the user's settings.
	UpdateUserSettings(ctx context.Context, userID string, settings models.Settings) error
}

// GroupStore persists groups, their members and pending invitations.
type GroupStore interface {
	// CreateGroup persists a new group. The group.ID and CreatedAt fields
	// are populated by the store. Returns ErrConflict if the name is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members and invitations.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns the groups userID is a member of.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AcceptInvite moves userID from the group's invited set to its members.
	AcceptInvite(ctx context.Context, groupID, userID string) error

	// RejectInvite removes userID from the group's invited set.
	RejectInvite(ctx context.Context, groupID, userID string) error
}

// TransactionStore persists the append-only transaction ledger.
type TransactionStore interface {
	// CreateTransaction appends a transaction. The ID and CreatedAt fields
	// are populated by the store.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// ListTransactions returns matching transactions oldest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
}

// Store is the full ledger store.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	GroupStore
	TransactionStore

	// Close releases any resources held by the store.
	Close() error
}
