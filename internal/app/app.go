package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	redisadapter "github.com/silvarafa06/1023A-backend-novo-1/internal/adapter/cache/redis"
	mongoadapter "github.com/silvarafa06/1023A-backend-novo-1/internal/adapter/mongo"
	natsadapter "github.com/silvarafa06/1023A-backend-novo-1/internal/adapter/nats"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/config"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/handler"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/platform/metrics"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/router"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	cfg           *config.Config
	log           *zap.Logger
	httpServer    *http.Server
	metricsMgr    *metrics.Manager
	mongoClient   *mongo.Client
	redisClient   *redis.Client
	natsPublisher *natsadapter.Publisher
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Logger initialized", zap.String("level", cfg.Logger.Level))

	logger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		logger.Error("Failed to initialize MongoDB client", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	logger.Info("MongoDB client initialized successfully")

	cartRepo := mongoadapter.NewCartMongoRepository(mongoClient, cfg.Mongo.Database)
	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure cart indexes", zap.Error(err))
		return nil, fmt.Errorf("failed to ensure cart indexes: %w", err)
	}
	userRepo := mongoadapter.NewUserMongoRepository(mongoClient, cfg.Mongo.Database)
	productRepo := mongoadapter.NewProductMongoRepository(mongoClient, cfg.Mongo.Database)
	logger.Info("Repositories initialized")

	redisClient, err := redisadapter.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		logger.Error("Failed to initialize Redis client", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	cacheRepo := redisadapter.NewRedisCacheRepository(redisClient, logger)

	natsPublisher, err := natsadapter.NewNATSPublisher(&cfg.NATS, logger)
	if err != nil {
		logger.Error("Failed to initialize NATS publisher", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
	}

	metricsMgr := metrics.NewManager("cart_service")

	cartUC := usecase.NewCartUseCase(cartRepo, cacheRepo, natsPublisher, metricsMgr, logger, cfg.Cache.CartTTL)
	catalogUC := usecase.NewCatalogUseCase(productRepo, logger)
	userUC := usecase.NewUserUseCase(userRepo, logger)

	cartHandler := handler.NewCartHandler(cartUC, logger)
	catalogHandler := handler.NewCatalogHandler(catalogUC, logger)
	userHandler := handler.NewUserHandler(userUC, logger)

	mux := router.New(cartHandler, catalogHandler, userHandler, metricsMgr, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		cfg:           cfg,
		log:           logger,
		httpServer:    httpServer,
		metricsMgr:    metricsMgr,
		mongoClient:   mongoClient,
		redisClient:   redisClient,
		natsPublisher: natsPublisher,
	}, nil
}

func (a *App) Run() {
	go func() {
		if err := metrics.StartMetricsServer(a.cfg.Metrics.Port, a.log, a.metricsMgr.Registry); err != nil && err != http.ErrServerClosed {
			a.log.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		a.log.Info("Starting HTTP server", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Info("Received shutdown signal, shutting down application...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Error during HTTP server graceful shutdown", zap.Error(err))
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	a.natsPublisher.Close()

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis client", zap.Error(err))
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Error("Error disconnecting from MongoDB", zap.Error(err))
	} else {
		a.log.Info("MongoDB connection closed")
	}

	_ = a.log.Sync()
}

func newLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if lvl, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zapCfg.Build()
}
