package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType selects which Details variant a transaction carries.
type TransactionType string

const (
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionIncome   TransactionType = "INCOME"
	TransactionTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionExpense, TransactionIncome, TransactionTransfer:
		return true
	}
	return false
}

// ParseTransactionType converts a case-insensitive name into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrMissingDetails = errors.New("transaction details required")
	ErrMissingGroup   = errors.New("group required")
)

// Transaction is an immutable ledger entry owned by a group.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Description is free text supplied by the creator.
	Description string

	// Amount is the non-negative value of the transaction.
	Amount decimal.Decimal

	// GroupID is the group whose ledger this transaction belongs to.
	GroupID string

	// CreatedBy is the user ID who recorded the transaction.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64

	// Details is the type-specific payload.
	Details Details
}

// Type returns the transaction type implied by its details.
func (t *Transaction) Type() TransactionType {
	if t == nil || t.Details == nil {
		return ""
	}
	return t.Details.Type()
}

// Validate checks the invariants every stored transaction must satisfy.
// Splitting-rule fractions are not required to sum to one.
func (t *Transaction) Validate() error {
	if t.GroupID == "" {
		return ErrMissingGroup
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Details == nil {
		return ErrMissingDetails
	}
	return t.Details.validate()
}

// Details is the type-specific payload of a transaction.
type Details interface {
	// Type is the transaction type this payload belongs to.
	Type() TransactionType

	// Actor is the user who spent, received or sent the money.
	Actor() string

	validate() error
}

// SplittingRule maps a member to their fractional share of an amount.
type SplittingRule map[string]decimal.Decimal

// Share returns userID's fraction, zero when absent.
func (r SplittingRule) Share(userID string) decimal.Decimal {
	return r[userID]
}

func (r SplittingRule) validate() error {
	for userID, fraction := range r {
		if userID == "" {
			return errors.New("splitting rule has an empty user id")
		}
		if fraction.IsNegative() {
			return fmt.Errorf("splitting rule share for %s must not be negative", userID)
		}
	}
	return nil
}

// ExpenseDetails describes money spent by one member on behalf of others.
type ExpenseDetails struct {
	Category      Category
	SpentBy       string
	SplittingRule SplittingRule
}

func (ExpenseDetails) Type() TransactionType { return TransactionExpense }
func (d ExpenseDetails) Actor() string       { return d.SpentBy }

func (d ExpenseDetails) validate() error {
	if !d.Category.Valid() {
		return fmt.Errorf("unknown category %q", d.Category)
	}
	if d.SpentBy == "" {
		return errors.New("expense requires spent_by")
	}
	return d.SplittingRule.validate()
}

// IncomeDetails describes money received by one member on behalf of others.
type IncomeDetails struct {
	ReceivedBy    string
	SplittingRule SplittingRule
}

func (IncomeDetails) Type() TransactionType { return TransactionIncome }
func (d IncomeDetails) Actor() string       { return d.ReceivedBy }

func (d IncomeDetails) validate() error {
	if d.ReceivedBy == "" {
		return errors.New("income requires received_by")
	}
	return d.SplittingRule.validate()
}

// TransferDetails describes money moved directly between two members.
type TransferDetails struct {
	From string
	To   string
}

func (TransferDetails) Type() TransactionType { return TransactionTransfer }
func (d TransferDetails) Actor() string       { return d.From }

func (d TransferDetails) validate() error {
	if d.From == "" || d.To == "" {
		return errors.New("transfer requires from and to")
	}
	if d.From == d.To {
		return errors.New("transfer from and to must differ")
	}
	return nil
}
