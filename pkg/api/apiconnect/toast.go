package apiconnect

import (
	"errors"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NewToastError builds a Connect error whose message is the first toast and
// whose details carry every toast as a StringValue.
func NewToastError(code connect.Code, toasts ...string) *connect.Error {
	message := ""
	if len(toasts) > 0 {
		message = toasts[0]
	}
	connectErr := connect.NewError(code, errors.New(message))
	for _, toast := range toasts {
		detail, err := connect.NewErrorDetail(wrapperspb.String(toast))
		if err != nil {
			continue
		}
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// Toasts returns the toast messages carried by err. It falls back to the
// error message when err carries no toast details, and returns nil for
// errors that are not Connect errors.
func Toasts(err error) []string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return nil
	}

	var toasts []string
	for _, detail := range connectErr.Details() {
		value, err := detail.Value()
		if err != nil {
			continue
		}
		if s, ok := value.(*wrapperspb.StringValue); ok {
			toasts = append(toasts, s.GetValue())
		}
	}
	if len(toasts) == 0 && connectErr.Message() != "" {
		toasts = []string{connectErr.Message()}
	}
	return toasts
}
