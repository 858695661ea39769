package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/models"
)

// scorePrecision is the number of decimal places a score is rounded to.
const scorePrecision = 4

// CategoryTotal is the accumulated spend in one category.
type CategoryTotal struct {
	Amount decimal.Decimal `json:"amount"`

	// Score is nil when the user has no limits configured.
	Score *decimal.Decimal `json:"score,omitempty"`
}

// Summary maps every category to its total.
type Summary map[models.Category]CategoryTotal

// ScoreFunc derives a budget score from the amount spent and the limit.
type ScoreFunc func(amount, limit decimal.Decimal) decimal.Decimal

// LimitConsumption is the fraction of the limit consumed, clamped to [0, 1].
// A missing or non-positive limit scores 0.
func LimitConsumption(amount, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	ratio := amount.Div(limit)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio.Round(scorePrecision)
}

// ComputeSummary totals the viewer's expenses per category.
//
// Every category is present in the result, including those with no spend.
// Only EXPENSE transactions spent by the viewer count. When limits is nil the
// scores are omitted; otherwise every category is scored with
// LimitConsumption, using a zero limit for categories without one.
func ComputeSummary(transactions []*models.Transaction, viewer string, limits map[models.Category]decimal.Decimal) Summary {
	return ComputeSummaryWith(transactions, viewer, limits, LimitConsumption)
}

// ComputeSummaryWith is ComputeSummary with score in place of LimitConsumption.
func ComputeSummaryWith(transactions []*models.Transaction, viewer string, limits map[models.Category]decimal.Decimal, score ScoreFunc) Summary {
	summary := make(Summary, len(models.Categories))
	for _, c := range models.Categories {
		summary[c] = CategoryTotal{Amount: decimal.Zero}
	}

	for _, t := range transactions {
		if t == nil {
			continue
		}
		d, ok := t.Details.(models.ExpenseDetails)
		if !ok || d.SpentBy != viewer {
			continue
		}
		total, known := summary[d.Category]
		if !known {
			continue
		}
		total.Amount = total.Amount.Add(t.Amount)
		summary[d.Category] = total
	}

	if limits != nil {
		for c, total := range summary {
			s := score(total.Amount, limits[c])
			total.Score = &s
			summary[c] = total
		}
	}

	return summary
}
