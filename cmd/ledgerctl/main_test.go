package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/auth"
	"github.com/mmynk/sharedledger/internal/config"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage/sqlite"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBPath:    filepath.Join(t.TempDir(), "ledger.db"),
		JWTSecret: "cli-secret",
		TokenTTL:  time.Hour,
		LogLevel:  "error",
	}
}

// execute runs ledgerctl with args and returns its stdout.
func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(t, cfg, "migrate")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, cfg.DBPath) {
		t.Errorf("unexpected output: %q", out)
	}

	// Re-running is a no-op.
	if _, err := execute(t, cfg, "migrate"); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestUserAddAndToken(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, cfg, "user", "add", "--first", "Ada", "--last", "Lovelace", "--email", "Ada@Example.com", "--password", "analytical")
	if err != nil {
		t.Fatalf("user add failed: %v", err)
	}
	userID, who, ok := strings.Cut(strings.TrimSpace(out), "\t")
	if !ok || userID == "" {
		t.Fatalf("expected the new user ID, got %q", out)
	}
	if who != "Ada Lovelace <ada@example.com>" {
		t.Errorf("user line = %q, want display name and normalized email", who)
	}

	t.Run("weak password", func(t *testing.T) {
		_, err := execute(t, cfg, "user", "add", "--first", "Bob", "--email", "bob@example.com", "--password", "short")
		if err == nil {
			t.Error("expected weak password to be rejected")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := execute(t, cfg, "user", "add", "--first", "Ada", "--email", "ada@example.com", "--password", "analytical")
		if err == nil {
			t.Error("expected duplicate email to be rejected")
		}
	})

	t.Run("token", func(t *testing.T) {
		out, err := execute(t, cfg, "token", "--email", "ada@example.com")
		if err != nil {
			t.Fatalf("token failed: %v", err)
		}
		claims, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL).Validate(strings.TrimSpace(out))
		if err != nil {
			t.Fatalf("minted token does not validate: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("user id: expected %s, got %s", userID, claims.UserID)
		}
	})

	t.Run("token for unknown user", func(t *testing.T) {
		if _, err := execute(t, cfg, "token", "--email", "nobody@example.com"); err == nil {
			t.Error("expected error for unknown user")
		}
	})
}

func TestReports(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	alice := models.NewUser("Alice", "A", "alice@example.com", "", "hash")
	bob := models.NewUser("Bob", "B", "bob@example.com", "", "hash")
	for _, u := range []*models.User{alice, bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}
	group := &models.Group{Name: "Flat", Members: []string{alice.ID, bob.ID}, CreatedBy: alice.ID}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	err = store.CreateTransaction(ctx, &models.Transaction{
		Amount:    decimal.NewFromInt(80),
		GroupID:   group.ID,
		CreatedBy: alice.ID,
		Details: models.ExpenseDetails{
			Category:      models.CategoryUtility,
			SpentBy:       alice.ID,
			SplittingRule: models.SplittingRule{bob.ID: decimal.RequireFromString("0.25")},
		},
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	store.Close()

	t.Run("owe-owed", func(t *testing.T) {
		out, err := execute(t, cfg, "owe-owed", "--group", group.ID, "--viewer", "alice@example.com")
		if err != nil {
			t.Fatalf("owe-owed failed: %v", err)
		}
		var owed map[string]decimal.Decimal
		if err := json.Unmarshal([]byte(out), &owed); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if len(owed) != 1 || !owed[bob.ID].Equal(decimal.NewFromInt(-20)) {
			t.Errorf("expected {bob: -20}, got %v", owed)
		}
	})

	t.Run("owe-owed for outsider", func(t *testing.T) {
		if _, err := execute(t, cfg, "owe-owed", "--group", group.ID, "--viewer", "nobody@example.com"); err == nil {
			t.Error("expected error for unknown viewer")
		}
	})

	t.Run("summary", func(t *testing.T) {
		out, err := execute(t, cfg, "summary", "--user", alice.ID)
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		var summary map[string]struct {
			Amount decimal.Decimal  `json:"amount"`
			Score  *decimal.Decimal `json:"score"`
		}
		if err := json.Unmarshal([]byte(out), &summary); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if len(summary) != len(models.Categories) {
			t.Errorf("expected %d categories, got %d", len(models.Categories), len(summary))
		}
		if !summary["UTILITY"].Amount.Equal(decimal.NewFromInt(80)) {
			t.Errorf("UTILITY: expected 80, got %s", summary["UTILITY"].Amount)
		}
		if summary["UTILITY"].Score != nil {
			t.Errorf("expected no score without limits")
		}
	})
}
