package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(amount, spentBy string, rule models.SplittingRule) *models.Transaction {
	return &models.Transaction{
		GroupID: "g1",
		Amount:  d(amount),
		Details: models.ExpenseDetails{Category: models.CategoryFNB, SpentBy: spentBy, SplittingRule: rule},
	}
}

func income(amount, receivedBy string, rule models.SplittingRule) *models.Transaction {
	return &models.Transaction{
		GroupID: "g1",
		Amount:  d(amount),
		Details: models.IncomeDetails{ReceivedBy: receivedBy, SplittingRule: rule},
	}
}

func transfer(amount, from, to string) *models.Transaction {
	return &models.Transaction{
		GroupID: "g1",
		Amount:  d(amount),
		Details: models.TransferDetails{From: from, To: to},
	}
}

func TestComputeOwedMap(t *testing.T) {
	group := &models.Group{ID: "g1", Members: []string{"Alice", "Bob", "Charlie"}}

	tests := []struct {
		name         string
		transactions []*models.Transaction
		viewer       string
		want         map[string]string
	}{
		{
			name:   "no transactions seeds zero for every other member",
			viewer: "Alice",
			want:   map[string]string{"Bob": "0", "Charlie": "0"},
		},
		{
			name:         "expense paid by viewer with partial rule",
			transactions: []*models.Transaction{expense("100", "Alice", models.SplittingRule{"Bob": d("0.5")})},
			viewer:       "Alice",
			want:         map[string]string{"Bob": "-50", "Charlie": "0"},
		},
		{
			name:         "expense paid by other member charges viewer's share to payer",
			transactions: []*models.Transaction{expense("90", "Bob", models.SplittingRule{"Alice": d("0.3333"), "Charlie": d("0.3333")})},
			viewer:       "Alice",
			want:         map[string]string{"Bob": "29.997", "Charlie": "0"},
		},
		{
			name:         "income received by viewer",
			transactions: []*models.Transaction{income("100", "Alice", models.SplittingRule{"Bob": d("0.5")})},
			viewer:       "Alice",
			want:         map[string]string{"Bob": "50", "Charlie": "0"},
		},
		{
			name:         "income received by other member",
			transactions: []*models.Transaction{income("40", "Charlie", models.SplittingRule{"Alice": d("0.25")})},
			viewer:       "Alice",
			want:         map[string]string{"Bob": "0", "Charlie": "-10"},
		},
		{
			name:         "transfer from viewer",
			transactions: []*models.Transaction{transfer("25", "Alice", "Bob")},
			viewer:       "Alice",
			want:         map[string]string{"Bob": "-25", "Charlie": "0"},
		},
		{
			name:         "transfer to viewer",
			transactions: []*models.Transaction{transfer("25", "Alice", "Bob")},
			viewer:       "Bob",
			want:         map[string]string{"Alice": "25", "Charlie": "0"},
		},
		{
			name: "third-party transactions leave the map untouched",
			transactions: []*models.Transaction{
				expense("100", "Bob", models.SplittingRule{"Charlie": d("1")}),
				income("60", "Charlie", models.SplittingRule{"Bob": d("0.5")}),
				transfer("10", "Bob", "Charlie"),
			},
			viewer: "Alice",
			want:   map[string]string{"Bob": "0", "Charlie": "0"},
		},
		{
			name: "expense then settling transfer nets to zero",
			transactions: []*models.Transaction{
				expense("100", "Alice", models.SplittingRule{"Alice": d("0.5"), "Bob": d("0.5")}),
				transfer("50", "Bob", "Alice"),
			},
			viewer: "Alice",
			want:   map[string]string{"Bob": "0", "Charlie": "0"},
		},
		{
			name: "viewer share in own expense is ignored",
			transactions: []*models.Transaction{
				expense("30", "Alice", models.SplittingRule{"Alice": d("1")}),
			},
			viewer: "Alice",
			want:   map[string]string{"Bob": "0", "Charlie": "0"},
		},
		{
			name: "non-member payer with non-zero share appears",
			transactions: []*models.Transaction{
				expense("20", "Dana", models.SplittingRule{"Alice": d("0.5")}),
				expense("20", "Erin", models.SplittingRule{"Bob": d("0.5")}),
			},
			viewer: "Alice",
			want:   map[string]string{"Bob": "0", "Charlie": "0", "Dana": "10"},
		},
		{
			name:         "nil transactions are skipped",
			transactions: []*models.Transaction{nil, {GroupID: "g1", Amount: d("5")}},
			viewer:       "Alice",
			want:         map[string]string{"Bob": "0", "Charlie": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeOwedMap(group, tt.transactions, tt.viewer)
			if len(got) != len(tt.want) {
				t.Fatalf("ComputeOwedMap() returned %d entries (%v), want %d", len(got), got, len(tt.want))
			}
			for member, want := range tt.want {
				amount, ok := got[member]
				if !ok {
					t.Errorf("missing entry for %s", member)
					continue
				}
				if !amount.Equal(d(want)) {
					t.Errorf("owed[%s] = %s, want %s", member, amount, want)
				}
			}
			if _, ok := got[tt.viewer]; ok {
				t.Errorf("viewer %s must not appear in own map", tt.viewer)
			}
		})
	}
}

func TestComputeOwedMap_OrderIndependent(t *testing.T) {
	group := &models.Group{ID: "g1", Members: []string{"Alice", "Bob", "Charlie"}}
	txs := []*models.Transaction{
		expense("100", "Alice", models.SplittingRule{"Bob": d("0.5"), "Charlie": d("0.25")}),
		income("80", "Bob", models.SplittingRule{"Alice": d("0.5")}),
		transfer("15", "Charlie", "Alice"),
		expense("12.40", "Charlie", models.SplittingRule{"Alice": d("0.5")}),
	}
	reversed := make([]*models.Transaction, len(txs))
	for i, tx := range txs {
		reversed[len(txs)-1-i] = tx
	}

	forward := ComputeOwedMap(group, txs, "Alice")
	backward := ComputeOwedMap(group, reversed, "Alice")
	for member, amount := range forward {
		if !amount.Equal(backward[member]) {
			t.Errorf("owed[%s]: forward %s, backward %s", member, amount, backward[member])
		}
	}

	// Bob: -50 (Alice's expense) - 40 (Bob's income share) = -90
	if !forward["Bob"].Equal(d("-90")) {
		t.Errorf("owed[Bob] = %s, want -90", forward["Bob"])
	}
	// Charlie: -25 (Alice's expense) + 15 (transfer) + 6.2 (Charlie's expense) = -3.8
	if !forward["Charlie"].Equal(d("-3.8")) {
		t.Errorf("owed[Charlie] = %s, want -3.8", forward["Charlie"])
	}
}

func TestComputeOwedMap_NilGroup(t *testing.T) {
	got := ComputeOwedMap(nil, []*models.Transaction{transfer("5", "a", "b")}, "a")
	if len(got) != 0 {
		t.Errorf("expected empty map for nil group, got %v", got)
	}
}

func TestOwedMapTotals(t *testing.T) {
	owed := OwedMap{"Bob": d("-50"), "Charlie": d("20"), "Dana": d("5.5"), "Erin": decimal.Zero}
	toViewer, byViewer := owed.Totals()
	if !toViewer.Equal(d("25.5")) {
		t.Errorf("owed to viewer = %s, want 25.5", toViewer)
	}
	if !byViewer.Equal(d("50")) {
		t.Errorf("owed by viewer = %s, want 50", byViewer)
	}
}
