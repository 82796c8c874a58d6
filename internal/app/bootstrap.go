package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/shortly/internal/config"
	"github.com/ferdiebergado/shortly/internal/middleware"
	"github.com/ferdiebergado/shortly/internal/pkg/logging"
	"github.com/ferdiebergado/shortly/internal/pkg/message"
	"github.com/ferdiebergado/shortly/internal/platform/db"
	"github.com/ferdiebergado/shortly/internal/platform/hash"
	"github.com/ferdiebergado/shortly/internal/platform/jwt"
	"github.com/ferdiebergado/shortly/internal/platform/router"
	"github.com/ferdiebergado/shortly/internal/platform/validation"
)

const defaultConfigFile = "config.json"

func Run(baseCtx context.Context) error {
	slog.Info("Initializing...")

	signalCtx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	appEnv := os.Getenv("ENV")
	if appEnv != "production" {
		if err := env.Load(".env"); err != nil {
			slog.Warn("No .env file loaded.", "reason", err)
		}
	}
	logging.SetupLogger(appEnv, os.Getenv("LOG_LEVEL"), os.Stdout)

	cfgFile := os.Getenv("CONFIG")
	if cfgFile == "" {
		cfgFile = defaultConfigFile
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	dbConn, err := db.Connect(signalCtx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	securityKey, err := getEnv("KEY")
	if err != nil {
		return err
	}

	adminHash, err := getEnv("ADMIN_PASSWORD_HASH")
	if err != nil {
		return err
	}

	providers := setupProviders(cfg, securityKey)

	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CORS,
		middleware.CheckContentType,
	}

	a := New(cfg, dbConn, providers, middlewares, adminHash)

	if err := a.Start(signalCtx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return a.Shutdown()
}

func getEnv(envVar string) (string, error) {
	val, ok := os.LookupEnv(envVar)
	if !ok {
		return "", fmt.Errorf(message.EnvErrFmt, envVar)
	}
	return val, nil
}

func setupProviders(cfg *config.Config, securityKey string) *Providers {
	signer := jwt.NewGolangJWTSigner(cfg.JWT, securityKey)
	hasher := hash.NewArgon2Hasher(cfg.Argon2, securityKey)
	r := router.NewGoexpressRouter()
	validator := validation.NewPlaygroundValidator()
	return &Providers{
		Signer:    signer,
		Hasher:    hasher,
		Router:    r,
		Validator: validator,
	}
}
