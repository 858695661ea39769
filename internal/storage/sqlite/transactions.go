package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
)

var transactionColumns = []string{
	"id", "type", "description", "amount", "group_id", "created_by", "created_at",
	"category", "actor_id", "counterparty_id",
}

// CreateTransaction appends a transaction and its splitting rule.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if t.Details == nil {
		return models.ErrMissingDetails
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	var (
		category     any
		counterparty any
		rule         models.SplittingRule
	)
	switch d := t.Details.(type) {
	case models.ExpenseDetails:
		category = string(d.Category)
		rule = d.SplittingRule
	case models.IncomeDetails:
		rule = d.SplittingRule
	case models.TransferDetails:
		counterparty = d.To
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := builder.Insert("transactions").
		Columns(transactionColumns...).
		Values(t.ID, string(t.Type()), t.Description, t.Amount.String(), t.GroupID, t.CreatedBy, t.CreatedAt,
			category, t.Details.Actor(), counterparty).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build transaction insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if len(rule) > 0 {
		shares := builder.Insert("transaction_shares").Columns("transaction_id", "user_id", "fraction")
		for userID, fraction := range rule {
			shares = shares.Values(t.ID, userID, fraction.String())
		}
		query, args, err := shares.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build shares insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert splitting rule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListTransactions returns the transactions matching filter, oldest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	query, args, err := builder.Select(transactionColumns...).
		From("transactions").
		Where(filterWhere(filter, "")).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transactions query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var (
		transactions []*models.Transaction
		withRules    = make(map[string]*models.Transaction)
	)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
		if t.Type() != models.TransactionTransfer {
			withRules[t.ID] = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	if err := loadSplittingRules(ctx, s.db, filter, withRules); err != nil {
		return nil, err
	}

	return transactions, nil
}

// filterWhere turns a filter into equality predicates on columns qualified by prefix.
func filterWhere(filter storage.TransactionFilter, prefix string) sq.Eq {
	where := sq.Eq{}
	if filter.GroupID != "" {
		where[prefix+"group_id"] = filter.GroupID
	}
	if filter.Type != "" {
		where[prefix+"type"] = string(filter.Type)
	}
	if filter.ActorID != "" {
		where[prefix+"actor_id"] = filter.ActorID
	}
	return where
}

func scanTransaction(rows *sql.Rows) (*models.Transaction, error) {
	t := &models.Transaction{}
	var (
		txType       string
		category     sql.NullString
		actor        string
		counterparty sql.NullString
	)
	if err := rows.Scan(&t.ID, &txType, &t.Description, &t.Amount, &t.GroupID, &t.CreatedBy, &t.CreatedAt,
		&category, &actor, &counterparty); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	switch models.TransactionType(txType) {
	case models.TransactionExpense:
		t.Details = models.ExpenseDetails{Category: models.Category(category.String), SpentBy: actor}
	case models.TransactionIncome:
		t.Details = models.IncomeDetails{ReceivedBy: actor}
	case models.TransactionTransfer:
		t.Details = models.TransferDetails{From: actor, To: counterparty.String}
	default:
		return nil, fmt.Errorf("unknown transaction type %q for %s", txType, t.ID)
	}

	return t, nil
}

// loadSplittingRules attaches stored shares to expense and income transactions.
// Shares are selected by joining on the same filter as the listing, so the
// query size does not grow with the number of transactions.
func loadSplittingRules(ctx context.Context, q querier, filter storage.TransactionFilter, byID map[string]*models.Transaction) error {
	if len(byID) == 0 {
		return nil
	}

	query, args, err := builder.Select("s.transaction_id", "s.user_id", "s.fraction").
		From("transaction_shares s").
		Join("transactions t ON t.id = s.transaction_id").
		Where(filterWhere(filter, "t.")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build shares query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get splitting rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[string]models.SplittingRule)
	for rows.Next() {
		var txID, userID string
		var fraction decimal.Decimal
		if err := rows.Scan(&txID, &userID, &fraction); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		if rules[txID] == nil {
			rules[txID] = make(models.SplittingRule)
		}
		rules[txID][userID] = fraction
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}

	for id, rule := range rules {
		t, ok := byID[id]
		if !ok {
			continue
		}
		switch d := t.Details.(type) {
		case models.ExpenseDetails:
			d.SplittingRule = rule
			t.Details = d
		case models.IncomeDetails:
			d.SplittingRule = rule
			t.Details = d
		}
	}

	return nil
}
