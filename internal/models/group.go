package models

import "slices"

// Group is a set of users sharing a ledger of transactions.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group. Names are unique.
	Name string

	// Members are the user IDs allowed to read and write the group's ledger.
	Members []string

	// Invited are user IDs with a pending invitation.
	Invited []string

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// IsMember reports whether userID is a current member of the group.
func (g *Group) IsMember(userID string) bool {
	return g != nil && userID != "" && slices.Contains(g.Members, userID)
}

// IsInvited reports whether userID has a pending invitation.
func (g *Group) IsInvited(userID string) bool {
	return g != nil && userID != "" && slices.Contains(g.Invited, userID)
}

// OtherMembers returns every member except userID, preserving order.
func (g *Group) OtherMembers(userID string) []string {
	if g == nil {
		return nil
	}
	others := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if m != "" && m != userID {
			others = append(others, m)
		}
	}
	return others
}
