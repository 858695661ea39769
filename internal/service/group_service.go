package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/internal/events"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
	"github.com/mmynk/sharedledger/pkg/api"
	"github.com/mmynk/sharedledger/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store     storage.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
// A nil publisher drops events.
func NewGroupService(store storage.Store, publisher events.Publisher, logger *slog.Logger) *GroupService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GroupService{store: store, publisher: publisher, logger: logger}
}

// CreateGroup creates a group with the caller as its only member and invites
// every registered user among invitedEmails. Unknown emails are dropped.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	s.logger.Info("CreateGroup request received",
		"name", name,
		"invited_count", len(req.Msg.InvitedEmails),
	)
	if name == "" {
		return nil, invalidRequest()
	}

	invitees, err := s.store.GetUsersByEmails(ctx, req.Msg.InvitedEmails)
	if err != nil {
		return nil, serverError(s.logger, "CreateGroup failed to resolve invitees", err)
	}

	group := &models.Group{
		Name:      name,
		Members:   []string{userID},
		CreatedBy: userID,
	}
	seen := map[string]bool{userID: true}
	for _, email := range req.Msg.InvitedEmails {
		invitee, ok := invitees[models.NormalizeEmail(email)]
		if !ok || seen[invitee.ID] {
			continue
		}
		seen[invitee.ID] = true
		group.Invited = append(group.Invited, invitee.ID)
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			s.logger.Warn("CreateGroup rejected, name taken", "name", name)
			return nil, apiconnect.NewToastError(connect.CodeAlreadyExists, ToastGroupExists)
		}
		return nil, serverError(s.logger, "CreateGroup failed", err)
	}

	if err := s.publisher.Publish(ctx, events.NewGroupCreated(group)); err != nil {
		s.logger.Warn("Failed to publish event", "event", events.GroupCreated, "group_id", group.ID, "error", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "invited", len(group.Invited))
	return connect.NewResponse(api.OK(toAPIGroup(group), "Group created successfully")), nil
}

// GetGroup returns a group to its members and to users it has invited.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupID
	s.logger.Info("GetGroup request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidRequest()
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if isNotFound(err) {
		return nil, apiconnect.NewToastError(connect.CodeNotFound, ToastInvalidResource)
	}
	if err != nil {
		return nil, serverError(s.logger, "GetGroup failed", err, "group_id", groupID)
	}

	if !group.IsMember(userID) && !group.IsInvited(userID) {
		return nil, apiconnect.NewToastError(connect.CodePermissionDenied, ToastNotAuthorized)
	}

	return connect.NewResponse(api.OK(toAPIGroup(group), "")), nil
}

// AcceptInvite moves the caller from the group's invited list to its members.
func (s *GroupService) AcceptInvite(ctx context.Context, req *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.respond(ctx, req.Msg.GroupID, s.store.AcceptInvite, "Successfully added to group")
}

// RejectInvite removes the caller from the group's invited list.
func (s *GroupService) RejectInvite(ctx context.Context, req *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.respond(ctx, req.Msg.GroupID, s.store.RejectInvite, "Successfully deleted the invite")
}

func (s *GroupService) respond(ctx context.Context, groupID string, apply func(ctx context.Context, groupID, userID string) error, message string) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Invitation response received", "group_id", groupID, "user_id", userID, "message", message)

	if groupID == "" {
		return nil, invalidRequest()
	}

	if err := apply(ctx, groupID, userID); err != nil {
		if errors.Is(err, storage.ErrNotInvited) || isNotFound(err) {
			return nil, invalidRequest()
		}
		return nil, serverError(s.logger, "Invitation response failed", err, "group_id", groupID)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, serverError(s.logger, "Failed to reload group", err, "group_id", groupID)
	}

	return connect.NewResponse(api.OK(toAPIGroup(group), message)), nil
}
