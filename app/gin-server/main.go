package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/coachify/config"
	"github.com/yoockh/coachify/internal/app"
	"github.com/yoockh/coachify/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("").WithError(err).Fatal("config load failed")
	}
	log := logger.New(cfg.Server.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	providers := app.NewProviders(ctx, cfg, log)
	a.Track(providers.Close)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.Handler(providers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("coachify listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	// hijacked sockets are not tracked by Shutdown; close them first
	log.WithField("open_sockets", a.Registry.Len()).Info("closing voice sockets")
	a.Registry.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown incomplete")
	}
	if err := a.Close(); err != nil {
		log.WithError(err).Warn("resource cleanup failed")
	}
}
