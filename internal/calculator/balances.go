// Package calculator holds the pure computations behind the ledger's
// reports: the viewer-centric owed map and the per-category spend summary.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/models"
)

// OwedMap maps a counterparty user ID to a signed amount.
// Positive = they owe the viewer, Negative = the viewer owes them.
type OwedMap map[string]decimal.Decimal

// ComputeOwedMap folds a group's transactions into the viewer's balance with
// every other member.
//
// Algorithm:
// - Seed every member other than the viewer with zero
// - EXPENSE paid by the viewer: each other member owes their share (owed[m] -= share*amount)
// - EXPENSE paid by someone else: the viewer owes the payer their share (owed[payer] += share*amount)
// - INCOME mirrors EXPENSE with the signs flipped
// - TRANSFER from the viewer: owed[to] -= amount
// - TRANSFER to the viewer: owed[from] += amount
//
// Contributions are independent per transaction, so order does not matter.
// Only transactions naming the viewer as actor or counterparty move the map;
// balances between two other members are never computed.
func ComputeOwedMap(group *models.Group, transactions []*models.Transaction, viewer string) OwedMap {
	owed := make(OwedMap)
	if group == nil {
		return owed
	}

	others := group.OtherMembers(viewer)
	for _, m := range others {
		owed[m] = decimal.Zero
	}

	for _, t := range transactions {
		if t == nil {
			continue
		}
		switch d := t.Details.(type) {
		case models.ExpenseDetails:
			if d.SpentBy == viewer {
				for _, m := range others {
					owed.add(viewer, m, d.SplittingRule.Share(m).Mul(t.Amount).Neg())
				}
			} else {
				owed.add(viewer, d.SpentBy, d.SplittingRule.Share(viewer).Mul(t.Amount))
			}
		case models.IncomeDetails:
			if d.ReceivedBy == viewer {
				for _, m := range others {
					owed.add(viewer, m, d.SplittingRule.Share(m).Mul(t.Amount))
				}
			} else {
				owed.add(viewer, d.ReceivedBy, d.SplittingRule.Share(viewer).Mul(t.Amount).Neg())
			}
		case models.TransferDetails:
			if d.From == viewer {
				owed.add(viewer, d.To, t.Amount.Neg())
			}
			if d.To == viewer {
				owed.add(viewer, d.From, t.Amount)
			}
		}
	}

	return owed
}

// add applies delta to counterparty. The viewer never owes themselves, and a
// zero delta never introduces a key.
func (o OwedMap) add(viewer, counterparty string, delta decimal.Decimal) {
	if counterparty == "" || counterparty == viewer || delta.IsZero() {
		return
	}
	o[counterparty] = o[counterparty].Add(delta)
}

// Totals splits an owed map into what others owe the viewer and what the
// viewer owes others, both as non-negative amounts.
func (o OwedMap) Totals() (owedToViewer, owedByViewer decimal.Decimal) {
	for _, amount := range o {
		if amount.IsPositive() {
			owedToViewer = owedToViewer.Add(amount)
		} else {
			owedByViewer = owedByViewer.Add(amount.Neg())
		}
	}
	return owedToViewer, owedByViewer
}
