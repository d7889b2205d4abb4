package handler

import (
	"context"
	"encoding/json"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/product"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ProductServiceName = "marketplace.catalog.v1.ProductService"

// ProductServiceServer exposes the product detail read over gRPC. Requests
// carry the product id as a StringValue; the reply is the same JSON document
// the HTTP endpoint returns, as a Struct.
type ProductServiceServer interface {
	GetProductDetail(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

type ProductGRPCHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductGRPCHandler(uc product.UseCase, log logger.ZapLogger) *ProductGRPCHandler {
	return &ProductGRPCHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductGRPCHandler) GetProductDetail(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, apperror.Validation("productId is required")
	}

	detail, err := h.uc.GetProductDetail(ctx, req.GetValue())
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(detail)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to encode product detail")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, apperror.Wrap(err, "failed to encode product detail")
	}
	return out, nil
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&productServiceDesc, srv)
}

func getProductDetailHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServiceServer).GetProductDetail(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ProductServiceName + "/GetProductDetail",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServiceServer).GetProductDetail(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProductDetail",
			Handler:    getProductDetailHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketplace/catalog/v1/product.proto",
}
