package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, caller, duration and outcome. Place it inside RequireAuth
// so the caller is known.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			userID := GetUserID(ctx) // empty on AuthService

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", procedure,
				"user_id", userID,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			var connectErr *connect.Error
			switch {
			case err == nil:
				logger.InfoContext(ctx, "RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				logger.WarnContext(ctx, "RPC rejected", append(attrs, "code", connectErr.Code(), "toast", connectErr.Message())...)
			default:
				logger.ErrorContext(ctx, "RPC failed", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}
