package grpc

// proto.go defines the gRPC server interface for creditrisk/v1/credit_risk.proto.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CreditRiskServiceServer is the server API for CreditRiskService.
type CreditRiskServiceServer interface {
	ScoreClients(context.Context, *ScoreClientsRequest) (*ScoreClientsResponse, error)
	GetFeatureSchema(context.Context, *GetFeatureSchemaRequest) (*GetFeatureSchemaResponse, error)
	mustEmbedUnimplementedCreditRiskServiceServer()
}

// UnimplementedCreditRiskServiceServer provides forward-compatible default implementations.
type UnimplementedCreditRiskServiceServer struct{}

func (UnimplementedCreditRiskServiceServer) ScoreClients(context.Context, *ScoreClientsRequest) (*ScoreClientsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreClients not implemented")
}
func (UnimplementedCreditRiskServiceServer) GetFeatureSchema(context.Context, *GetFeatureSchemaRequest) (*GetFeatureSchemaResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetFeatureSchema not implemented")
}
func (UnimplementedCreditRiskServiceServer) mustEmbedUnimplementedCreditRiskServiceServer() {}

// RegisterCreditRiskServiceServer registers the CreditRiskServiceServer with the gRPC server.
func RegisterCreditRiskServiceServer(s *grpclib.Server, srv CreditRiskServiceServer) {
	s.RegisterService(&_CreditRiskService_serviceDesc, srv)
}

const serviceName = "creditrisk.v1.CreditRiskService"

var _CreditRiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CreditRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreClients", Handler: _CreditRiskService_ScoreClients_Handler},
		{MethodName: "GetFeatureSchema", Handler: _CreditRiskService_GetFeatureSchema_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "creditrisk/v1/credit_risk.proto",
}

func _CreditRiskService_ScoreClients_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreClientsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).ScoreClients(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/ScoreClients",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).ScoreClients(ctx, req.(*ScoreClientsRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _CreditRiskService_GetFeatureSchema_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetFeatureSchemaRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).GetFeatureSchema(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/GetFeatureSchema",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).GetFeatureSchema(ctx, req.(*GetFeatureSchemaRequest))
	}
	return interceptor(ctx, req, info, handler)
}
