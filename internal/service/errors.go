package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/internal/storage"
	"github.com/mmynk/sharedledger/pkg/api/apiconnect"
)

// Toast messages shown to the caller.
const (
	ToastInvalidResource = "Invalid resource"
	ToastNotAuthorized   = "You are not authorized to perform this action."
	ToastInvalidGroup    = "Invalid group"
	ToastInvalidRequest  = "Invalid request"
	ToastUnableToLogin   = "Unable to login"
	ToastGroupExists     = "Group with provided name already exists"
	ToastUserNotFound    = "Unable to get user details"
	ToastServerError     = "Server error occurred"
)

// serverError logs err and hides it behind the generic toast.
func serverError(logger *slog.Logger, msg string, err error, args ...any) error {
	logger.Error(msg, append(args, "error", err)...)
	return apiconnect.NewToastError(connect.CodeInternal, ToastServerError)
}

// invalidRequest rejects a malformed request.
func invalidRequest(toasts ...string) error {
	if len(toasts) == 0 {
		toasts = []string{ToastInvalidRequest}
	}
	return apiconnect.NewToastError(connect.CodeInvalidArgument, toasts...)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
