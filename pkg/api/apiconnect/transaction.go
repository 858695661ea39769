package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/pkg/api"
)

const (
	// TransactionServiceName is the fully-qualified name of the TransactionService service.
	TransactionServiceName = packageName + ".TransactionService"

	TransactionServiceCreateTransactionProcedure = "/" + TransactionServiceName + "/CreateTransaction"
	TransactionServiceListTransactionsProcedure  = "/" + TransactionServiceName + "/ListTransactions"
	TransactionServiceGetOweOwedProcedure        = "/" + TransactionServiceName + "/GetOweOwed"
	TransactionServiceGetSummaryProcedure        = "/" + TransactionServiceName + "/GetSummary"
)

// TransactionServiceClient is a client for the sharedledger.v1.TransactionService service.
type TransactionServiceClient interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.TransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.TransactionsResponse], error)
	GetOweOwed(context.Context, *connect.Request[api.GetOweOwedRequest]) (*connect.Response[api.OweOwedResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error)
}

// NewTransactionServiceClient constructs a client for the sharedledger.v1.TransactionService service.
func NewTransactionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransactionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &transactionServiceClient{
		createTransaction: connect.NewClient[api.CreateTransactionRequest, api.TransactionResponse](httpClient, baseURL+TransactionServiceCreateTransactionProcedure, opts...),
		listTransactions:  connect.NewClient[api.ListTransactionsRequest, api.TransactionsResponse](httpClient, baseURL+TransactionServiceListTransactionsProcedure, opts...),
		getOweOwed:        connect.NewClient[api.GetOweOwedRequest, api.OweOwedResponse](httpClient, baseURL+TransactionServiceGetOweOwedProcedure, opts...),
		getSummary:        connect.NewClient[api.GetSummaryRequest, api.SummaryResponse](httpClient, baseURL+TransactionServiceGetSummaryProcedure, opts...),
	}
}

type transactionServiceClient struct {
	createTransaction *connect.Client[api.CreateTransactionRequest, api.TransactionResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.TransactionsResponse]
	getOweOwed        *connect.Client[api.GetOweOwedRequest, api.OweOwedResponse]
	getSummary        *connect.Client[api.GetSummaryRequest, api.SummaryResponse]
}

func (c *transactionServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.TransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *transactionServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.TransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetOweOwed(ctx context.Context, req *connect.Request[api.GetOweOwedRequest]) (*connect.Response[api.OweOwedResponse], error) {
	return c.getOweOwed.CallUnary(ctx, req)
}

func (c *transactionServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// TransactionServiceHandler is an implementation of the sharedledger.v1.TransactionService service.
type TransactionServiceHandler interface {
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.TransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.TransactionsResponse], error)
	GetOweOwed(context.Context, *connect.Request[api.GetOweOwedRequest]) (*connect.Response[api.OweOwedResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error)
}

// NewTransactionServiceHandler builds an HTTP handler from the service implementation.
func NewTransactionServiceHandler(svc TransactionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createTransactionHandler := connect.NewUnaryHandler(TransactionServiceCreateTransactionProcedure, svc.CreateTransaction, opts...)
	listTransactionsHandler := connect.NewUnaryHandler(TransactionServiceListTransactionsProcedure, svc.ListTransactions, opts...)
	getOweOwedHandler := connect.NewUnaryHandler(TransactionServiceGetOweOwedProcedure, svc.GetOweOwed, opts...)
	getSummaryHandler := connect.NewUnaryHandler(TransactionServiceGetSummaryProcedure, svc.GetSummary, opts...)
	return "/" + TransactionServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TransactionServiceCreateTransactionProcedure:
			createTransactionHandler.ServeHTTP(w, r)
		case TransactionServiceListTransactionsProcedure:
			listTransactionsHandler.ServeHTTP(w, r)
		case TransactionServiceGetOweOwedProcedure:
			getOweOwedHandler.ServeHTTP(w, r)
		case TransactionServiceGetSummaryProcedure:
			getSummaryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedTransactionServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTransactionServiceHandler struct{}

func (UnimplementedTransactionServiceHandler) CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.TransactionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(TransactionServiceCreateTransactionProcedure))
}

func (UnimplementedTransactionServiceHandler) ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.TransactionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(TransactionServiceListTransactionsProcedure))
}

func (UnimplementedTransactionServiceHandler) GetOweOwed(context.Context, *connect.Request[api.GetOweOwedRequest]) (*connect.Response[api.OweOwedResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(TransactionServiceGetOweOwedProcedure))
}

func (UnimplementedTransactionServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(TransactionServiceGetSummaryProcedure))
}
