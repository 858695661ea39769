package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/internal/middleware"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
	"github.com/mmynk/sharedledger/pkg/api/apiconnect"
)

// callerID returns the authenticated caller or an Unauthenticated error when
// the handler was mounted without RequireAuth.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", apiconnect.NewToastError(connect.CodeUnauthenticated, middleware.ToastUnauthorized)
	}
	return userID, nil
}

// memberGroup loads groupID and checks that userID is one of its members.
// Missing groups surface missingToast, non-members deniedToast.
func memberGroup(ctx context.Context, store storage.GroupStore, logger *slog.Logger, groupID, userID, missingToast, deniedToast string) (*models.Group, error) {
	if groupID == "" {
		return nil, invalidRequest()
	}

	group, err := store.GetGroup(ctx, groupID)
	if isNotFound(err) {
		return nil, apiconnect.NewToastError(connect.CodeNotFound, missingToast)
	}
	if err != nil {
		return nil, serverError(logger, "Failed to load group", err, "group_id", groupID)
	}

	if !group.IsMember(userID) {
		logger.Warn("Non-member denied", "group_id", groupID, "user_id", userID)
		return nil, apiconnect.NewToastError(connect.CodePermissionDenied, deniedToast)
	}
	return group, nil
}
