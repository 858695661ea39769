package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/internal/storage"
	"github.com/mmynk/sharedledger/pkg/api"
	"github.com/mmynk/sharedledger/pkg/api/apiconnect"
)

// UserService serves the caller's own account.
type UserService struct {
	apiconnect.UnimplementedUserServiceHandler
	store  storage.Store
	logger *slog.Logger
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// GetMe returns the caller's profile and settings.
func (s *UserService) GetMe(ctx context.Context, _ *connect.Request[api.GetMeRequest]) (*connect.Response[api.UserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if isNotFound(err) {
		return nil, apiconnect.NewToastError(connect.CodeNotFound, ToastUserNotFound)
	}
	if err != nil {
		return nil, serverError(s.logger, "GetMe failed", err, "user_id", userID)
	}

	return connect.NewResponse(api.OK(toAPIUser(user), "User details found")), nil
}

// ListMyGroups returns the groups the caller is a member of.
func (s *UserService) ListMyGroups(ctx context.Context, _ *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.GroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, serverError(s.logger, "ListMyGroups failed", err, "user_id", userID)
	}

	payload := make([]api.Group, len(groups))
	for i, g := range groups {
		payload[i] = toAPIGroup(g)
	}

	s.logger.Info("ListMyGroups successful", "user_id", userID, "count", len(groups))
	return connect.NewResponse(api.OK(payload, "User groups fetched")), nil
}

// UpdateSettings replaces the limits and/or income present in the request
// and keeps the rest.
func (s *UserService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if isNotFound(err) {
		return nil, apiconnect.NewToastError(connect.CodeNotFound, ToastUserNotFound)
	}
	if err != nil {
		return nil, serverError(s.logger, "UpdateSettings failed", err, "user_id", userID)
	}

	settings := user.Settings
	if req.Msg.Limits != nil {
		limits, err := parseLimits(req.Msg.Limits)
		if err != nil {
			s.logger.Warn("UpdateSettings rejected", "user_id", userID, "error", err)
			return nil, invalidRequest()
		}
		settings.Limits = limits
	}
	if req.Msg.Income != nil {
		if req.Msg.Income.IsNegative() {
			return nil, invalidRequest()
		}
		income := *req.Msg.Income
		settings.Income = &income
	}

	if err := s.store.UpdateUserSettings(ctx, userID, settings); err != nil {
		return nil, serverError(s.logger, "UpdateSettings failed", err, "user_id", userID)
	}
	user.Settings = settings

	s.logger.Info("Settings updated", "user_id", userID, "limits", len(settings.Limits), "income_set", settings.Income != nil)
	return connect.NewResponse(api.OK(toAPIUser(user), "User settings has been updated successfully.")), nil
}
