package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
)

const (
	statusMember  = "member"
	statusInvited = "invited"
)

// CreateGroup persists a new group with its members and invitations.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group name %q", storage.ErrConflict, group.Name)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	position := 0
	insert := func(userID, status string) error {
		position++
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_id, user_id, status, position) VALUES (?, ?, ?, ?)",
			group.ID, userID, status, position,
		)
		return err
	}
	for _, userID := range group.Members {
		if err := insert(userID, statusMember); err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	for _, userID := range group.Invited {
		if err := insert(userID, statusInvited); err != nil {
			return fmt.Errorf("failed to insert group invitation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including members and invitations.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: group %s", storage.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadMemberships(ctx, []*models.Group{group}); err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroupsByMember returns every group userID belongs to, newest first.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	query, args, err := builder.
		Select("g.id", "g.name", "g.created_by", "g.created_at").
		From("groups g").
		Join("group_members m ON m.group_id = g.id").
		Where(sq.Eq{"m.user_id": userID, "m.status": statusMember}).
		OrderBy("g.created_at DESC", "g.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build groups query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	if err := s.loadMemberships(ctx, groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// AcceptInvite turns a pending invitation into a membership.
func (s *SQLiteStore) AcceptInvite(ctx context.Context, groupID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE group_members
		 SET status = ?, position = (SELECT COALESCE(MAX(position), 0) + 1 FROM group_members WHERE group_id = ?)
		 WHERE group_id = ? AND user_id = ? AND status = ?`,
		statusMember, groupID, groupID, userID, statusInvited,
	)
	if err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}
	return requireAffected(result, groupID)
}

// RejectInvite deletes a pending invitation.
func (s *SQLiteStore) RejectInvite(ctx context.Context, groupID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ? AND status = ?",
		groupID, userID, statusInvited,
	)
	if err != nil {
		return fmt.Errorf("failed to reject invite: %w", err)
	}
	return requireAffected(result, groupID)
}

func requireAffected(result sql.Result, groupID string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: group %s", storage.ErrNotInvited, groupID)
	}
	return nil
}

// loadMemberships fills Members and Invited for the given groups, one query per chunk of ids.
func (s *SQLiteStore) loadMemberships(ctx context.Context, groups []*models.Group) error {
	if len(groups) == 0 {
		return nil
	}

	byID := make(map[string]*models.Group, len(groups))
	ids := make([]string, len(groups))
	for i, g := range groups {
		byID[g.ID] = g
		ids[i] = g.ID
	}

	for _, chunk := range chunked(ids, maxBindVars) {
		if err := s.loadMembershipChunk(ctx, chunk, byID); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) loadMembershipChunk(ctx context.Context, ids []string, byID map[string]*models.Group) error {
	query, args, err := builder.
		Select("group_id", "user_id", "status").
		From("group_members").
		Where(sq.Eq{"group_id": ids}).
		OrderBy("group_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build membership query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, userID, status string
		if err := rows.Scan(&groupID, &userID, &status); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		g := byID[groupID]
		if status == statusMember {
			g.Members = append(g.Members, userID)
		} else {
			g.Invited = append(g.Invited, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}

	return nil
}
