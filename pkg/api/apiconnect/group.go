package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sharedledger/pkg/api"
)

const (
	// GroupServiceName is the fully-qualified name of the GroupService service.
	GroupServiceName = packageName + ".GroupService"

	GroupServiceCreateGroupProcedure  = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure     = "/" + GroupServiceName + "/GetGroup"
	GroupServiceAcceptInviteProcedure = "/" + GroupServiceName + "/AcceptInvite"
	GroupServiceRejectInviteProcedure = "/" + GroupServiceName + "/RejectInvite"
)

// GroupServiceClient is a client for the sharedledger.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	AcceptInvite(context.Context, *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error)
	RejectInvite(context.Context, *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error)
}

// NewGroupServiceClient constructs a client for the sharedledger.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:  connect.NewClient[api.CreateGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:     connect.NewClient[api.GetGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		acceptInvite: connect.NewClient[api.RespondInviteRequest, api.GroupResponse](httpClient, baseURL+GroupServiceAcceptInviteProcedure, opts...),
		rejectInvite: connect.NewClient[api.RespondInviteRequest, api.GroupResponse](httpClient, baseURL+GroupServiceRejectInviteProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup  *connect.Client[api.CreateGroupRequest, api.GroupResponse]
	getGroup     *connect.Client[api.GetGroupRequest, api.GroupResponse]
	acceptInvite *connect.Client[api.RespondInviteRequest, api.GroupResponse]
	rejectInvite *connect.Client[api.RespondInviteRequest, api.GroupResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AcceptInvite(ctx context.Context, req *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.acceptInvite.CallUnary(ctx, req)
}

func (c *groupServiceClient) RejectInvite(ctx context.Context, req *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.rejectInvite.CallUnary(ctx, req)
}

// GroupServiceHandler is an implementation of the sharedledger.v1.GroupService service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	AcceptInvite(context.Context, *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error)
	RejectInvite(context.Context, *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroupHandler := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	acceptInviteHandler := connect.NewUnaryHandler(GroupServiceAcceptInviteProcedure, svc.AcceptInvite, opts...)
	rejectInviteHandler := connect.NewUnaryHandler(GroupServiceRejectInviteProcedure, svc.RejectInvite, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroupHandler.ServeHTTP(w, r)
		case GroupServiceAcceptInviteProcedure:
			acceptInviteHandler.ServeHTTP(w, r)
		case GroupServiceRejectInviteProcedure:
			rejectInviteHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceCreateGroupProcedure))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceGetGroupProcedure))
}

func (UnimplementedGroupServiceHandler) AcceptInvite(context.Context, *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceAcceptInviteProcedure))
}

func (UnimplementedGroupServiceHandler) RejectInvite(context.Context, *connect.Request[api.RespondInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceRejectInviteProcedure))
}
