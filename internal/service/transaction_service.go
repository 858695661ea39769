package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/sharedledger/internal/calculator"
	"github.com/mmynk/sharedledger/internal/events"
	"github.com/mmynk/sharedledger/internal/models"
	"github.com/mmynk/sharedledger/internal/storage"
	"github.com/mmynk/sharedledger/pkg/api"
	"github.com/mmynk/sharedledger/pkg/api/apiconnect"
)

// TransactionService implements the Connect TransactionService.
type TransactionService struct {
	apiconnect.UnimplementedTransactionServiceHandler
	store     storage.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewTransactionService creates a new TransactionService. A nil publisher
// drops events.
func NewTransactionService(store storage.Store, publisher events.Publisher, logger *slog.Logger) *TransactionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TransactionService{store: store, publisher: publisher, logger: logger}
}

// CreateTransaction appends a transaction to a group the caller belongs to.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.TransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateTransaction request received",
		"group_id", req.Msg.Group,
		"type", req.Msg.Type,
		"amount", req.Msg.Amount,
	)

	if _, err := memberGroup(ctx, s.store, s.logger, req.Msg.Group, userID, ToastInvalidGroup, ToastInvalidGroup); err != nil {
		return nil, err
	}

	tx, err := fromCreateRequest(req.Msg, userID)
	if err == nil {
		err = tx.Validate()
	}
	if err != nil {
		s.logger.Warn("CreateTransaction rejected", "group_id", req.Msg.Group, "error", err)
		return nil, invalidRequest()
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, serverError(s.logger, "CreateTransaction failed", err, "group_id", tx.GroupID)
	}

	if err := s.publisher.Publish(ctx, events.NewTransactionCreated(tx)); err != nil {
		s.logger.Warn("Failed to publish event", "event", events.TransactionCreated, "transaction_id", tx.ID, "error", err)
	}

	s.logger.Info("Transaction created", "transaction_id", tx.ID, "group_id", tx.GroupID)
	return connect.NewResponse(api.OK(toAPITransaction(tx), "Transaction added successfully")), nil
}

// ListTransactions returns a group's ledger, oldest first.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.TransactionsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupID
	s.logger.Info("ListTransactions request received", "group_id", groupID)

	if _, err := memberGroup(ctx, s.store, s.logger, groupID, userID, ToastInvalidResource, ToastNotAuthorized); err != nil {
		return nil, err
	}

	txs, err := s.store.ListTransactions(ctx, storage.TransactionFilter{GroupID: groupID})
	if err != nil {
		return nil, serverError(s.logger, "ListTransactions failed", err, "group_id", groupID)
	}

	payload := make([]api.Transaction, len(txs))
	for i, tx := range txs {
		payload[i] = toAPITransaction(tx)
	}

	s.logger.Info("ListTransactions successful", "group_id", groupID, "count", len(txs))
	return connect.NewResponse(api.OK(payload, "Transactions fetched successfully.")), nil
}

// GetOweOwed reports, for every other member, how much they owe the caller
// (positive) or the caller owes them (negative).
func (s *TransactionService) GetOweOwed(ctx context.Context, req *connect.Request[api.GetOweOwedRequest]) (*connect.Response[api.OweOwedResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupID
	s.logger.Info("GetOweOwed request received", "group_id", groupID, "user_id", userID)

	group, err := memberGroup(ctx, s.store, s.logger, groupID, userID, ToastInvalidResource, ToastNotAuthorized)
	if err != nil {
		return nil, err
	}

	txs, err := s.store.ListTransactions(ctx, storage.TransactionFilter{GroupID: groupID})
	if err != nil {
		return nil, serverError(s.logger, "GetOweOwed failed - could not list transactions", err, "group_id", groupID)
	}

	owed := calculator.ComputeOwedMap(group, txs, userID)
	owedToMe, iOwe := owed.Totals()

	s.logger.Info("GetOweOwed successful",
		"group_id", groupID,
		"transactions_count", len(txs),
		"owed_to_viewer", owedToMe,
		"owed_by_viewer", iOwe,
	)
	return connect.NewResponse(api.OK(map[string]decimal.Decimal(owed), "Owe-owed report generated successfully.")), nil
}

// GetSummary totals the caller's expenses per category across every group,
// scored against the caller's limits when set.
func (s *TransactionService) GetSummary(ctx context.Context, _ *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetSummary request received", "user_id", userID)

	var (
		user     *models.User
		expenses []*models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.store.GetUserByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListTransactions(gctx, storage.TransactionFilter{
			Type:    models.TransactionExpense,
			ActorID: userID,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		if isNotFound(err) {
			return nil, apiconnect.NewToastError(connect.CodeNotFound, ToastUserNotFound)
		}
		return nil, serverError(s.logger, "GetSummary failed", err, "user_id", userID)
	}

	summary := calculator.ComputeSummary(expenses, userID, user.Settings.Limits)

	s.logger.Info("GetSummary successful", "user_id", userID, "expenses_count", len(expenses), "scored", user.Settings.Limits != nil)
	return connect.NewResponse(api.OK(toAPISummary(summary), "Summary report generated successfully.")), nil
}
