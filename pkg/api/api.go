// Package api defines the JSON messages exchanged with the ledger's Connect
// services.
//
// Every response is an Envelope: {"success": true, "payload": ..., "message": ...}.
// Failures are Connect errors whose details carry the toast messages; see
// apiconnect.Toasts.
//
// Amounts are decimals and are encoded as JSON strings ("12.50") to avoid
// float rounding.
package api

import "github.com/shopspring/decimal"

// Envelope wraps every successful response payload.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Payload T      `json:"payload"`
	Message string `json:"message,omitempty"`
}

// OK builds a successful envelope.
func OK[T any](payload T, message string) *Envelope[T] {
	return &Envelope[T]{Success: true, Payload: payload, Message: message}
}

// Name is a user's display name.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Settings are a user's budgeting preferences.
type Settings struct {
	// Limits maps a category to its spending limit. Absent when never set.
	Limits map[string]decimal.Decimal `json:"limits,omitempty"`
	Income *decimal.Decimal           `json:"income,omitempty"`
}

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID        string   `json:"id"`
	Name      Name     `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Settings  Settings `json:"settings"`
	CreatedAt int64    `json:"createdAt"`
}

// Group is a set of members sharing a ledger.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	Invited   []string `json:"invited"`
	CreatedBy string   `json:"createdBy"`
	CreatedAt int64    `json:"createdAt"`
}

// TransactionDetails is the type-specific payload of a transaction.
// EXPENSE uses category, spentBy and splittingRule; INCOME uses receivedBy
// and splittingRule; TRANSFER uses from and to.
type TransactionDetails struct {
	Category      string                     `json:"category,omitempty"`
	SpentBy       string                     `json:"spentBy,omitempty"`
	ReceivedBy    string                     `json:"receivedBy,omitempty"`
	SplittingRule map[string]decimal.Decimal `json:"splittingRule,omitempty"`
	From          string                     `json:"from,omitempty"`
	To            string                     `json:"to,omitempty"`
}

// Transaction is an immutable ledger entry.
type Transaction struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	Group       string             `json:"group"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   int64              `json:"createdAt"`
	Details     TransactionDetails `json:"details"`
}

// CategoryTotal is the caller's spend in one category.
type CategoryTotal struct {
	Amount decimal.Decimal `json:"amount"`
	// Score is omitted when the caller has no limits configured.
	Score *decimal.Decimal `json:"score,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token as its payload.
type LoginResponse = Envelope[string]

type GetMeRequest struct{}

type UserResponse = Envelope[User]

type ListMyGroupsRequest struct{}

type GroupsResponse = Envelope[[]Group]

// UpdateSettingsRequest replaces only the fields that are present.
type UpdateSettingsRequest struct {
	Limits map[string]decimal.Decimal `json:"limits,omitempty"`
	Income *decimal.Decimal           `json:"income,omitempty"`
}

type CreateGroupRequest struct {
	Name          string   `json:"name"`
	InvitedEmails []string `json:"invitedEmails"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

// RespondInviteRequest accepts or rejects the caller's invitation to a group.
type RespondInviteRequest struct {
	GroupID string `json:"groupId"`
}

type GroupResponse = Envelope[Group]

type CreateTransactionRequest struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	Group       string             `json:"group"`
	Details     TransactionDetails `json:"details"`
}

type TransactionResponse = Envelope[Transaction]

type ListTransactionsRequest struct {
	GroupID string `json:"groupId"`
}

type TransactionsResponse = Envelope[[]Transaction]

type GetOweOwedRequest struct {
	GroupID string `json:"groupId"`
}

// OweOwedResponse maps each counterparty to a signed amount.
// Positive = they owe the caller, Negative = the caller owes them.
type OweOwedResponse = Envelope[map[string]decimal.Decimal]

type GetSummaryRequest struct{}

// SummaryResponse maps every category to the caller's spend.
type SummaryResponse = Envelope[map[string]CategoryTotal]
