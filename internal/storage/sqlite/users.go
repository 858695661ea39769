package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
)

var userColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "password_hash", "limits", "income", "created_at",
}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = models.NormalizeEmail(user.Email)

	limits, income, err := encodeSettings(user.Settings)
	if err != nil {
		return err
	}

	var phone any
	if user.Phone != "" {
		phone = user.Phone
	}

	query, args, err := builder.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.FirstName, user.LastName, user.Email, phone, user.PasswordHash, limits, income, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email or phone already registered", storage.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, sq.Eq{"email": models.NormalizeEmail(email)})
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *SQLiteStore) getUser(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := builder.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsersByEmails retrieves the users registered under the given emails.
// Returns a map of normalized email to User; unknown emails are omitted.
func (s *SQLiteStore) GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	if len(emails) == 0 {
		return users, nil
	}

	normalized := make([]string, len(emails))
	for i, email := range emails {
		normalized[i] = models.NormalizeEmail(email)
	}

	for _, chunk := range chunked(normalized, maxBindVars) {
		if err := s.collectUsers(ctx, sq.Eq{"email": chunk}, users); err != nil {
			return nil, err
		}
	}

	return users, nil
}

// collectUsers adds the users matching where to users, keyed by email.
func (s *SQLiteStore) collectUsers(ctx context.Context, where sq.Eq, users map[string]*models.User) error {
	query, args, err := builder.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build users query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get users by emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.Email] = user
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating users: %w", err)
	}
	return nil
}

// UpdateUserSettings replaces a user's limits and income.
func (s *SQLiteStore) UpdateUserSettings(ctx context.Context, userID string, settings models.Settings) error {
	limits, income, err := encodeSettings(settings)
	if err != nil {
		return err
	}

	query, args, err := builder.Update("users").
		Set("limits", limits).
		Set("income", income).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build settings update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: user %s", storage.ErrNotFound, userID)
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var phone, limits, income sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&phone,
		&user.PasswordHash,
		&limits,
		&income,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	user.Phone = phone.String
	if limits.Valid {
		if err := json.Unmarshal([]byte(limits.String), &user.Settings.Limits); err != nil {
			return nil, fmt.Errorf("failed to decode limits: %w", err)
		}
		if user.Settings.Limits == nil {
			user.Settings.Limits = make(map[models.Category]decimal.Decimal)
		}
	}
	if income.Valid {
		v, err := decimal.NewFromString(income.String)
		if err != nil {
			return nil, fmt.Errorf("failed to decode income: %w", err)
		}
		user.Settings.Income = &v
	}

	return user, nil
}

// encodeSettings converts settings to nullable column values.
func encodeSettings(settings models.Settings) (limits, income any, err error) {
	if settings.Limits != nil {
		raw, err := json.Marshal(settings.Limits)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode limits: %w", err)
		}
		limits = string(raw)
	}
	if settings.Income != nil {
		income = settings.Income.String()
	}
	return limits, income, nil
}
