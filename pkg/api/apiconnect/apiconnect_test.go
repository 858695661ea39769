package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/pkg/api"
)

func TestJSONCodec(t *testing.T) {
	t.Run("decimals encode as strings", func(t *testing.T) {
		data, err := JSON.Marshal(api.OK(map[string]decimal.Decimal{"bob": decimal.RequireFromString("-12.50")}, "ok"))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		want := `{"success":true,"payload":{"bob":"-12.5"},"message":"ok"}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("empty body leaves message untouched", func(t *testing.T) {
		var req api.GetSummaryRequest
		if err := JSON.Unmarshal(nil, &req); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		var req api.LoginRequest
		if err := JSON.Unmarshal([]byte(`{"email":`), &req); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestToasts(t *testing.T) {
	t.Run("details", func(t *testing.T) {
		err := NewToastError(connect.CodeInvalidArgument, "Invalid request", "Invalid group")
		if err.Message() != "Invalid request" {
			t.Errorf("message: expected 'Invalid request', got '%s'", err.Message())
		}
		toasts := Toasts(err)
		if len(toasts) != 2 || toasts[0] != "Invalid request" || toasts[1] != "Invalid group" {
			t.Errorf("unexpected toasts: %v", toasts)
		}
	})

	t.Run("falls back to message", func(t *testing.T) {
		err := connect.NewError(connect.CodeInternal, errors.New("boom"))
		toasts := Toasts(err)
		if len(toasts) != 1 || toasts[0] != "boom" {
			t.Errorf("unexpected toasts: %v", toasts)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if toasts := Toasts(errors.New("boom")); toasts != nil {
			t.Errorf("expected nil, got %v", toasts)
		}
	})
}

type loginStub struct {
	UnimplementedAuthServiceHandler
}

func (loginStub) Login(_ context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if req.Msg.Password != "secret123" {
		return nil, NewToastError(connect.CodeUnauthenticated, "Unable to login")
	}
	return connect.NewResponse(api.OK("token-for-"+req.Msg.Email, "Logged in successfully")), nil
}

func TestAuthServiceRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(loginStub{}))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewAuthServiceClient(http.DefaultClient, server.URL)

	t.Run("success", func(t *testing.T) {
		resp, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
			Email:    "alice@example.com",
			Password: "secret123",
		}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if !resp.Msg.Success {
			t.Error("expected success envelope")
		}
		if resp.Msg.Payload != "token-for-alice@example.com" {
			t.Errorf("payload: got '%s'", resp.Msg.Payload)
		}
	})

	t.Run("toast survives the wire", func(t *testing.T) {
		_, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Fatalf("expected Unauthenticated, got %v", connect.CodeOf(err))
		}
		toasts := Toasts(err)
		if len(toasts) != 1 || toasts[0] != "Unable to login" {
			t.Errorf("unexpected toasts: %v", toasts)
		}
	})

	t.Run("plain JSON POST", func(t *testing.T) {
		resp, err := http.Post(server.URL+AuthServiceLoginProcedure, "application/json",
			strings.NewReader(`{"email":"bob@example.com","password":"secret123"}`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status: expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown procedure", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/"+AuthServiceName+"/Logout", "application/json", strings.NewReader(`{}`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status: expected 404, got %d", resp.StatusCode)
		}
	})
}
