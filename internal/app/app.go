package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/shortly/internal/auth"
	"github.com/ferdiebergado/shortly/internal/config"
	"github.com/ferdiebergado/shortly/internal/link"
	"github.com/ferdiebergado/shortly/internal/platform/db"
	"github.com/ferdiebergado/shortly/internal/platform/hash"
	"github.com/ferdiebergado/shortly/internal/platform/jwt"
	"github.com/ferdiebergado/shortly/internal/platform/router"
	"github.com/ferdiebergado/shortly/internal/platform/validation"
)

type Providers struct {
	Signer    jwt.Signer
	Hasher    hash.Hasher
	Validator validation.Validator
	Router    router.Router
}

type App struct {
	server          *http.Server
	config          *config.Config
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
	db              *sql.DB
	signer          jwt.Signer
	hasher          hash.Hasher
	validator       validation.Validator
	router          router.Router
	txManager       db.TxManager
	adminHash       string
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	linkRepo := link.NewRepository(a.db)
	linkService := link.NewService(linkRepo, a.txManager, a.config.Link)
	linkHandler := link.NewHandler(linkService, a.config.Server)

	authProviders := &auth.Providers{
		Hasher: a.hasher,
		Signer: a.signer,
	}
	authService := auth.NewService(authProviders, a.config.JWT, a.adminHash)
	authHandler := auth.NewHandler(authService)

	mountRoutes(a.router, linkHandler, authHandler, a.validator, a.signer, a.config.Server.MaxBodyBytes)
}

func (a *App) Start(ctx context.Context) error {
	a.registerMiddlewares()
	a.setupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(cfg *config.Config, dbConn *sql.DB, providers *Providers, middlewares []func(http.Handler) http.Handler, adminHash string) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: providers.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	txMgr := db.NewSQLTxManager(dbConn)

	return &App{
		config:          cfg,
		db:              dbConn,
		txManager:       txMgr,
		signer:          providers.Signer,
		hasher:          providers.Hasher,
		validator:       providers.Validator,
		router:          providers.Router,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
		adminHash:       adminHash,
	}
}
