package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/auth"
	"github.com/mmynk/sharedledger/internal/events"
	"github.com/mmynk/sharedledger/internal/middleware"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage/sqlite"
	"github.com/mmynk/sharedledger/pkg/api"
	"github.com/mmynk/sharedledger/pkg/api/apiconnect"
)

const testPassword = "correct-horse"

// testServer runs every service against a temp-file SQLite store.
type testServer struct {
	t         *testing.T
	url       string
	store     *sqlite.SQLiteStore
	jwt       *auth.JWTManager
	provision *auth.PasswordAuthenticator
	events    *events.Recorder
	phones    int
}

// clients are Connect clients authenticated as one user.
type clients struct {
	user         *models.User
	Users        apiconnect.UserServiceClient
	Groups       apiconnect.GroupServiceClient
	Transactions apiconnect.TransactionServiceClient
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sharedledger-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)
	recorder := &events.Recorder{}

	guarded := connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor(logger))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, logger)))
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store, logger), guarded))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, recorder, logger), guarded))
	mux.Handle(apiconnect.NewTransactionServiceHandler(NewTransactionService(store, recorder, logger), guarded))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		t:         t,
		url:       server.URL,
		store:     store,
		jwt:       jwtManager,
		provision: authenticator,
		events:    recorder,
	}
}

// addUser provisions first@example.com with testPassword.
func (s *testServer) addUser(first string) *models.User {
	s.t.Helper()
	s.phones++
	user, err := s.provision.Provision(context.Background(), first, "Tester",
		strings.ToLower(first)+"@example.com", fmt.Sprintf("+1555000%04d", s.phones), testPassword)
	if err != nil {
		s.t.Fatalf("Provision(%s) failed: %v", first, err)
	}
	return user
}

func (s *testServer) authClient() apiconnect.AuthServiceClient {
	return apiconnect.NewAuthServiceClient(http.DefaultClient, s.url)
}

// as returns clients that send a bearer token for user.
func (s *testServer) as(user *models.User) clients {
	s.t.Helper()
	token, err := s.jwt.Generate(user)
	if err != nil {
		s.t.Fatalf("Generate failed: %v", err)
	}
	opt := connect.WithInterceptors(bearer(token))
	return clients{
		user:         user,
		Users:        apiconnect.NewUserServiceClient(http.DefaultClient, s.url, opt),
		Groups:       apiconnect.NewGroupServiceClient(http.DefaultClient, s.url, opt),
		Transactions: apiconnect.NewTransactionServiceClient(http.DefaultClient, s.url, opt),
	}
}

func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

// createGroup creates a group owned by owner and has every invitee accept.
func createGroup(t *testing.T, owner clients, name string, members ...clients) api.Group {
	t.Helper()
	emails := make([]string, len(members))
	for i, m := range members {
		emails[i] = m.user.Email
	}
	resp, err := owner.Groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:          name,
		InvitedEmails: emails,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Payload
	for _, m := range members {
		accepted, err := m.Groups.AcceptInvite(context.Background(), connect.NewRequest(&api.RespondInviteRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("AcceptInvite failed: %v", err)
		}
		group = accepted.Msg.Payload
	}
	return group
}

// expectToast checks the Connect code and the first toast of err.
func expectToast(t *testing.T, err error, code connect.Code, toast string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if connect.CodeOf(err) != code {
		t.Errorf("code: expected %v, got %v (%v)", code, connect.CodeOf(err), err)
	}
	toasts := apiconnect.Toasts(err)
	if len(toasts) == 0 || toasts[0] != toast {
		t.Errorf("toasts: expected [%q], got %v", toast, toasts)
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
