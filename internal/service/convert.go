package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sharedledger/internal/calculator"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/pkg/api"
)

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      api.Name{First: u.FirstName, Last: u.LastName},
		Email:     u.Email,
		Phone:     u.Phone,
		Settings:  toAPISettings(u.Settings),
		CreatedAt: u.CreatedAt,
	}
}

func toAPISettings(s models.Settings) api.Settings {
	out := api.Settings{Income: s.Income}
	if s.Limits != nil {
		out.Limits = make(map[string]decimal.Decimal, len(s.Limits))
		for c, limit := range s.Limits {
			out.Limits[string(c)] = limit
		}
	}
	return out
}

func toAPIGroup(g *models.Group) api.Group {
	return api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   nonNil(g.Members),
		Invited:   nonNil(g.Invited),
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toAPITransaction(t *models.Transaction) api.Transaction {
	out := api.Transaction{
		ID:          t.ID,
		Type:        string(t.Type()),
		Description: t.Description,
		Amount:      t.Amount,
		Group:       t.GroupID,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
	switch d := t.Details.(type) {
	case models.ExpenseDetails:
		out.Details = api.TransactionDetails{
			Category:      string(d.Category),
			SpentBy:       d.SpentBy,
			SplittingRule: d.SplittingRule,
		}
	case models.IncomeDetails:
		out.Details = api.TransactionDetails{
			ReceivedBy:    d.ReceivedBy,
			SplittingRule: d.SplittingRule,
		}
	case models.TransferDetails:
		out.Details = api.TransactionDetails{From: d.From, To: d.To}
	}
	return out
}

// fromCreateRequest builds an unsaved transaction from the request. The
// result still needs Validate.
func fromCreateRequest(req *api.CreateTransactionRequest, createdBy string) (*models.Transaction, error) {
	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		GroupID:     req.Group,
		CreatedBy:   createdBy,
	}

	d := req.Details
	switch txType {
	case models.TransactionExpense:
		category, err := models.ParseCategory(d.Category)
		if err != nil {
			return nil, err
		}
		tx.Details = models.ExpenseDetails{
			Category:      category,
			SpentBy:       d.SpentBy,
			SplittingRule: d.SplittingRule,
		}
	case models.TransactionIncome:
		tx.Details = models.IncomeDetails{
			ReceivedBy:    d.ReceivedBy,
			SplittingRule: d.SplittingRule,
		}
	case models.TransactionTransfer:
		tx.Details = models.TransferDetails{From: d.From, To: d.To}
	default:
		return nil, fmt.Errorf("unsupported transaction type %q", txType)
	}
	return tx, nil
}

func toAPISummary(s calculator.Summary) map[string]api.CategoryTotal {
	out := make(map[string]api.CategoryTotal, len(s))
	for c, total := range s {
		out[string(c)] = api.CategoryTotal{Amount: total.Amount, Score: total.Score}
	}
	return out
}

func parseLimits(limits map[string]decimal.Decimal) (map[models.Category]decimal.Decimal, error) {
	out := make(map[models.Category]decimal.Decimal, len(limits))
	for name, limit := range limits {
		c, err := models.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if limit.IsNegative() {
			return nil, fmt.Errorf("limit for %s must not be negative", c)
		}
		out[c] = limit
	}
	return out, nil
}
