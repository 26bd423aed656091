package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/kevlab/flasktaskr-project/api/handler"
	"github.com/kevlab/flasktaskr-project/internal/config"
	"github.com/kevlab/flasktaskr-project/internal/infrastructure/monitor"
	pgInfra "github.com/kevlab/flasktaskr-project/internal/infrastructure/postgres"
	redisInfra "github.com/kevlab/flasktaskr-project/internal/infrastructure/redis"
	"github.com/kevlab/flasktaskr-project/internal/middleware"
	"github.com/kevlab/flasktaskr-project/internal/router"
	"github.com/kevlab/flasktaskr-project/internal/services/lifecycle"
	"github.com/kevlab/flasktaskr-project/pkg/hasher"
	"github.com/kevlab/flasktaskr-project/pkg/httpcontext"
	"github.com/kevlab/flasktaskr-project/pkg/logger"
	"github.com/kevlab/flasktaskr-project/pkg/sessiontoken"
	"github.com/kevlab/flasktaskr-project/repository"
	boltRepo "github.com/kevlab/flasktaskr-project/repository/bolt"
	"github.com/kevlab/flasktaskr-project/repository/postgres"
	redisRepo "github.com/kevlab/flasktaskr-project/repository/redis"
	authUC "github.com/kevlab/flasktaskr-project/usecase/auth"
	taskUC "github.com/kevlab/flasktaskr-project/usecase/task"
	userUC "github.com/kevlab/flasktaskr-project/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		File:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
		Compress:   cfg.Logger.Compress,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()
	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(context.Context) error {
		pool.Close()
		return nil
	})

	sessionRepo, err := openSessionStore(ctx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("session store unavailable", zap.String("driver", cfg.Session.Driver), zap.Error(err))
	}

	tokens, err := sessiontoken.NewCodec(cfg.Session.Secret, cfg.Session.Issuer)
	if err != nil {
		zapLogger.Fatal("session token codec", zap.Error(err))
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	userUseCase := userUC.New(userRepo, hasher.NewBcrypt(cfg.Security.BcryptCost), zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	authUseCase := authUC.New(sessionRepo, tokens, cfg.Session.TTL, zapLogger)

	mon := monitor.New(pgInfra.Pinger{Pool: pool}, sessionRepo, cfg.Session.Driver, 0, zapLogger)
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	cookie := middleware.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}

	handlers := router.Handlers{
		User:   apiHandler.NewUserHandler(userUseCase, authUseCase, cookie, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		API:    apiHandler.NewAPIHandler(taskUseCase, ctxAdapter, zapLogger),
		Page:   apiHandler.NewPageHandler(ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	guard := middleware.RequireLogin(cookie, authUseCase, userUseCase, ctxAdapter, zapLogger)
	r := router.New(handlers, guard)

	server := &fasthttp.Server{
		Handler:      router.Handler(r, middleware.AccessLog(zapLogger)),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	zapLogger.Info("server started", zap.String("address", cfg.Address()), zap.String("env", cfg.Environment))
	if err := manager.Run(ctx, func() error {
		return server.ListenAndServe(cfg.Address())
	}); err != nil {
		zapLogger.Error("shutdown finished with errors", zap.Error(err))
	}
}

// openSessionStore connects the configured session driver and registers its shutdown.
func openSessionStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, zapLogger *zap.Logger) (repository.SessionRepository, error) {
	switch cfg.Session.Driver {
	case config.SessionDriverBolt:
		store, err := boltRepo.Open(cfg.Session.BoltPath, cfg.Session.TTL)
		if err != nil {
			return nil, err
		}
		manager.Closer("session_store", store.Close)
		removed, err := store.Sweep()
		if err != nil {
			zapLogger.Warn("session sweep failed", zap.Error(err))
		}
		zapLogger.Info("bolt session store opened", zap.String("path", cfg.Session.BoltPath), zap.Int("expired_removed", removed))
		return store, nil
	default:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, zapLogger)
		if err != nil {
			return nil, err
		}
		manager.Closer("redis", client.Close)
		return redisRepo.NewSessionRepository(client, cfg.Session.TTL), nil
	}
}
