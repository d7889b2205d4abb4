package middleware

import (
	"context"
	"time"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataRequestID = "x-request-id"

// UnaryServerInterceptor is the gRPC counterpart of RequestLogger. Handler
// errors that are not already gRPC statuses are translated from apperror kinds.
func UnaryServerInterceptor(base logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(metadataRequestID); len(vals) > 0 {
				requestID = vals[0]
			}
		}
		if requestID == "" {
			requestID = uuid.New().String()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(metadataRequestID, requestID))

		reqLogger := base.With(zap.String("request_id", requestID))
		ctx = logger.WithContext(ctx, reqLogger)

		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("latency", time.Since(start)),
		}
		if err == nil {
			reqLogger.Info("rpc", fields...)
			return resp, nil
		}

		if _, ok := status.FromError(err); ok {
			reqLogger.Warn("rpc", append(fields, zap.Error(err))...)
			return resp, err
		}

		code := apperror.GRPCCode(err)
		if apperror.KindOf(err) == apperror.KindInternal {
			reqLogger.Error("rpc", append(fields, zap.Error(err))...)
		} else {
			reqLogger.Warn("rpc", append(fields, zap.Error(err))...)
		}
		return nil, status.Error(code, apperror.PublicMessage(err))
	}
}
