package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/pkg/api"
)

const (
	// UserServiceName is the fully-qualified name of the UserService service.
	UserServiceName = packageName + ".UserService"

	UserServiceGetMeProcedure          = "/" + UserServiceName + "/GetMe"
	UserServiceListMyGroupsProcedure   = "/" + UserServiceName + "/ListMyGroups"
	UserServiceUpdateSettingsProcedure = "/" + UserServiceName + "/UpdateSettings"
)

// UserServiceClient is a client for the sharedledger.v1.UserService service.
type UserServiceClient interface {
	GetMe(context.Context, *connect.Request[api.GetMeRequest]) (*connect.Response[api.UserResponse], error)
	ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.GroupsResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UserResponse], error)
}

// NewUserServiceClient constructs a client for the sharedledger.v1.UserService service.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &userServiceClient{
		getMe:          connect.NewClient[api.GetMeRequest, api.UserResponse](httpClient, baseURL+UserServiceGetMeProcedure, opts...),
		listMyGroups:   connect.NewClient[api.ListMyGroupsRequest, api.GroupsResponse](httpClient, baseURL+UserServiceListMyGroupsProcedure, opts...),
		updateSettings: connect.NewClient[api.UpdateSettingsRequest, api.UserResponse](httpClient, baseURL+UserServiceUpdateSettingsProcedure, opts...),
	}
}

type userServiceClient struct {
	getMe          *connect.Client[api.GetMeRequest, api.UserResponse]
	listMyGroups   *connect.Client[api.ListMyGroupsRequest, api.GroupsResponse]
	updateSettings *connect.Client[api.UpdateSettingsRequest, api.UserResponse]
}

func (c *userServiceClient) GetMe(ctx context.Context, req *connect.Request[api.GetMeRequest]) (*connect.Response[api.UserResponse], error) {
	return c.getMe.CallUnary(ctx, req)
}

func (c *userServiceClient) ListMyGroups(ctx context.Context, req *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.GroupsResponse], error) {
	return c.listMyGroups.CallUnary(ctx, req)
}

func (c *userServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UserResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

// UserServiceHandler is an implementation of the sharedledger.v1.UserService service.
type UserServiceHandler interface {
	GetMe(context.Context, *connect.Request[api.GetMeRequest]) (*connect.Response[api.UserResponse], error)
	ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.GroupsResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getMeHandler := connect.NewUnaryHandler(UserServiceGetMeProcedure, svc.GetMe, opts...)
	listMyGroupsHandler := connect.NewUnaryHandler(UserServiceListMyGroupsProcedure, svc.ListMyGroups, opts...)
	updateSettingsHandler := connect.NewUnaryHandler(UserServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...)
	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceGetMeProcedure:
			getMeHandler.ServeHTTP(w, r)
		case UserServiceListMyGroupsProcedure:
			listMyGroupsHandler.ServeHTTP(w, r)
		case UserServiceUpdateSettingsProcedure:
			updateSettingsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) GetMe(context.Context, *connect.Request[api.GetMeRequest]) (*connect.Response[api.UserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(UserServiceGetMeProcedure))
}

func (UnimplementedUserServiceHandler) ListMyGroups(context.Context, *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.GroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(UserServiceListMyGroupsProcedure))
}

func (UnimplementedUserServiceHandler) UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(UserServiceUpdateSettingsProcedure))
}
