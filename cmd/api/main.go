package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mossjr/tab-image-gen-poc/internal/bootstrap"
	"github.com/mossjr/tab-image-gen-poc/internal/http/handlers"
	httpapi "github.com/mossjr/tab-image-gen-poc/internal/http/httpapi"
	"github.com/mossjr/tab-image-gen-poc/internal/infra"
	"github.com/mossjr/tab-image-gen-poc/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer closeStore()

	comp := bootstrap.NewCompositor(cfg, logger)
	background := comp.LoadBackground(cfg.BackgroundPath)

	var exports *storage.FileStore
	if cfg.ExportDir != "" {
		exports, err = storage.NewFileStore(cfg.ExportDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare export dir")
		}
		logger.Info().Str("dir", exports.BasePath()).Msg("archiving exports")
	}

	app := handlers.NewApp(store, comp, background, exports, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("backend", cfg.StoreBackend).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
