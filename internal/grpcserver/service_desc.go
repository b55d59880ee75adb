package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "jobtracker.v1.TrackerService"

// TrackerServiceServer is the server API for TrackerService. Messages are
// protobuf well-known types, so no generated code is needed.
type TrackerServiceServer interface {
	ListApplications(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	ListByStatus(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	ListActive(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetApplication(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	CreateApplication(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateApplication(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteApplication(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	GetStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv TrackerServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// FullMethod returns "/jobtracker.v1.TrackerService/<method>", the name a
// client passes to grpc.ClientConn.Invoke.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryHandler builds a grpc.MethodHandler for one RPC.
func unaryHandler[Req any](method string, newReq func() *Req, call func(TrackerServiceServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TrackerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TrackerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newEmpty() *emptypb.Empty           { return new(emptypb.Empty) }
func newStruct() *structpb.Struct        { return new(structpb.Struct) }
func newInt64() *wrapperspb.Int64Value   { return new(wrapperspb.Int64Value) }
func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListApplications",
			Handler: unaryHandler("ListApplications", newEmpty, func(s TrackerServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListApplications(ctx, in)
			}),
		},
		{
			MethodName: "ListByStatus",
			Handler: unaryHandler("ListByStatus", newString, func(s TrackerServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.ListByStatus(ctx, in)
			}),
		},
		{
			MethodName: "ListActive",
			Handler: unaryHandler("ListActive", newEmpty, func(s TrackerServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListActive(ctx, in)
			}),
		},
		{
			MethodName: "GetApplication",
			Handler: unaryHandler("GetApplication", newInt64, func(s TrackerServiceServer, ctx context.Context, in *wrapperspb.Int64Value) (any, error) {
				return s.GetApplication(ctx, in)
			}),
		},
		{
			MethodName: "CreateApplication",
			Handler: unaryHandler("CreateApplication", newStruct, func(s TrackerServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.CreateApplication(ctx, in)
			}),
		},
		{
			MethodName: "UpdateApplication",
			Handler: unaryHandler("UpdateApplication", newStruct, func(s TrackerServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.UpdateApplication(ctx, in)
			}),
		},
		{
			MethodName: "DeleteApplication",
			Handler: unaryHandler("DeleteApplication", newInt64, func(s TrackerServiceServer, ctx context.Context, in *wrapperspb.Int64Value) (any, error) {
				return s.DeleteApplication(ctx, in)
			}),
		},
		{
			MethodName: "GetStats",
			Handler: unaryHandler("GetStats", newEmpty, func(s TrackerServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.GetStats(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}
