// Package grpcserver implements the TrackerService gRPC server.
//
// It delegates all business logic to tracker.Service and handles only the
// gRPC transport concerns: error mapping and conversion between the domain
// model and protobuf well-known types. Records travel as structpb.Struct with
// the same field names as the JSON API.
package grpcserver

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/p3bustos/jobtracker/internal/logger"
	"github.com/p3bustos/jobtracker/internal/tracker"
)

// Server implements TrackerServiceServer.
type Server struct {
	svc *tracker.Service
	log *logger.Logger
}

// NewServer constructs a gRPC Server backed by the given tracker.Service.
func NewServer(svc *tracker.Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{svc: svc, log: log}
}

var _ TrackerServiceServer = (*Server)(nil)

// ─── RPC implementations ──────────────────────────────────────────────────────

// ListApplications returns every application.
func (s *Server) ListApplications(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	apps, err := s.svc.ListApplications(ctx)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.appsToProto(apps)
}

// ListByStatus returns the applications in the requested status.
func (s *Server) ListByStatus(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	apps, err := s.svc.ListByStatus(ctx, req.GetValue())
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.appsToProto(apps)
}

// ListActive returns every non-terminal application.
func (s *Server) ListActive(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	apps, err := s.svc.ListActive(ctx)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.appsToProto(apps)
}

// GetApplication returns one application by id.
func (s *Server) GetApplication(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	app, err := s.svc.GetApplication(ctx, req.GetValue())
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.toStruct(app)
}

// CreateApplication validates and stores a new application.
func (s *Server) CreateApplication(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	body, err := requestFromStruct(req)
	if err != nil {
		return nil, err
	}
	app, err := s.svc.CreateApplication(ctx, body)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.toStruct(app)
}

// UpdateApplication replaces the application named by the request's "id"
// field.
func (s *Server) UpdateApplication(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	idVal, ok := req.GetFields()["id"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	id := int64(idVal.GetNumberValue())
	if id < 1 || float64(id) != idVal.GetNumberValue() {
		return nil, status.Error(codes.InvalidArgument, "id must be a positive integer")
	}

	body, err := requestFromStruct(req)
	if err != nil {
		return nil, err
	}
	app, err := s.svc.UpdateApplication(ctx, id, body)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.toStruct(app)
}

// DeleteApplication removes one application by id.
func (s *Server) DeleteApplication(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.svc.DeleteApplication(ctx, req.GetValue()); err != nil {
		return nil, s.toGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

// GetStats returns the five-count stats snapshot.
func (s *Server) GetStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return s.toStruct(st)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// toGRPCError maps domain errors to gRPC status errors.
func (s *Server) toGRPCError(err error) error {
	var (
		ve *tracker.ValidationError
		ie *tracker.InvalidStatusError
	)
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.As(err, &ie):
		return status.Error(codes.InvalidArgument, ie.Error())
	case errors.Is(err, tracker.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	s.log.Error().Err(err).Msg("grpc request failed")
	return status.Error(codes.Internal, "internal server error")
}

// toStruct converts v through its JSON form, so the derived flags and field
// names match the HTTP API.
func (s *Server) toStruct(v any) (*structpb.Struct, error) {
	var m map[string]any
	if err := roundTrip(v, &m); err != nil {
		return nil, s.toGRPCError(err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, s.toGRPCError(err)
	}
	return out, nil
}

func (s *Server) appsToProto(apps []tracker.Application) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(apps))
	for i := range apps {
		st, err := s.toStruct(apps[i])
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(st))
	}
	return &structpb.ListValue{Values: values}, nil
}

func requestFromStruct(in *structpb.Struct) (tracker.ApplicationRequest, error) {
	var req tracker.ApplicationRequest
	if err := roundTrip(in.AsMap(), &req); err != nil {
		return req, status.Error(codes.InvalidArgument, "malformed application: "+err.Error())
	}
	return req, nil
}

func roundTrip(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
