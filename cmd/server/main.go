package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/marketplace-catalog-service/config"
	"github.com/fekuna/marketplace-catalog-service/internal/broker"
	"github.com/fekuna/marketplace-catalog-service/internal/cache"
	"github.com/fekuna/marketplace-catalog-service/internal/database"
	"github.com/fekuna/marketplace-catalog-service/internal/logger"
	"github.com/fekuna/marketplace-catalog-service/internal/product"
	"github.com/fekuna/marketplace-catalog-service/internal/recommend"
	"github.com/fekuna/marketplace-catalog-service/internal/server"

	bpRepoPkg "github.com/fekuna/marketplace-catalog-service/internal/businessprofile/repository"
	catH "github.com/fekuna/marketplace-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/marketplace-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/marketplace-catalog-service/internal/category/usecase"
	prodH "github.com/fekuna/marketplace-catalog-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/marketplace-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/marketplace-catalog-service/internal/product/usecase"
	sellerListenerPkg "github.com/fekuna/marketplace-catalog-service/internal/seller/listener"
	userRepoPkg "github.com/fekuna/marketplace-catalog-service/internal/user/repository"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		ServiceName:       cfg.Server.ServiceName,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&database.Config{
		DSN:             cfg.Postgres.DSN(),
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			appLogger.Fatal("Could not migrate database", zap.Error(err))
		}
	}

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)
	bpRepo := bpRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis. The category tree falls back to the database without it.
	var treeCache catUCPkg.TreeCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, category cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			treeCache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Kafka
	var publisher product.Publisher
	var sellerListener *sellerListenerPkg.SellerListener
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ProductEventsTopic,
		})
		defer producer.Close()
		publisher = producer

		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.SellerEventsTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		sellerListener = sellerListenerPkg.NewSellerListener(consumer, userRepo, bpRepo, appLogger)
		appLogger.Info("Connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("product_topic", cfg.Kafka.ProductEventsTopic),
			zap.String("seller_topic", cfg.Kafka.SellerEventsTopic),
		)
	}

	// 7. Initialize UseCases
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recommend.RegisterMetrics(registry)

	assembler := recommend.NewAssembler(prodRepo, catRepo, bpRepo, recommend.Config{
		ProductLimit:      cfg.Catalog.RelatedProductsLimit,
		CategoryLimit:     cfg.Catalog.RelatedCategoriesLimit,
		EnrichConcurrency: cfg.Catalog.EnrichConcurrency,
	}, appLogger)

	catUC := catUCPkg.NewCategoryUseCase(catRepo, treeCache, cfg.Catalog.CategoryCacheTTL, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, userRepo, bpRepo, assembler, publisher, appLogger)

	// 8. Initialize Servers
	httpServer := server.NewHTTPServer(
		server.HTTPConfig{ServiceName: cfg.Server.ServiceName, Registry: registry},
		appLogger,
		prodH.NewProductHandler(prodUC, appLogger),
		catH.NewCategoryHandler(catUC, appLogger),
	)

	grpcServer, healthServer := server.NewGRPCServer(appLogger)
	prodH.RegisterProductServiceServer(grpcServer, prodH.NewProductGRPCHandler(prodUC, appLogger))

	grpcLis, err := net.Listen("tcp", withColon(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if sellerListener != nil {
		g.Go(func() error {
			sellerListener.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := httpServer.Start(withColon(cfg.Server.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", cfg.Server.GRPCPort))
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		healthServer.SetServingStatus(prodH.ProductServiceName, healthpb.HealthCheckResponse_SERVING)
		return grpcServer.Serve(grpcLis)
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP shutdown", zap.Error(err))
		}

		done := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Server exited with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
