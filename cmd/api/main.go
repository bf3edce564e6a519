package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mercatodev/storefront/internal/config"
	"github.com/mercatodev/storefront/internal/db"
	httpx "github.com/mercatodev/storefront/internal/http"
	"github.com/mercatodev/storefront/internal/observability"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// storage
	connectCtx, cancelConnect := config.WithTimeout(10 * time.Second)
	database, err := db.Connect(connectCtx, cfg.MongoURI, cfg.MongoDB)
	cancelConnect()

	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}

	indexCtx, cancelIndex := config.WithTimeout(10 * time.Second)
	err = db.EnsureIndexes(indexCtx, database)
	cancelIndex()

	if err != nil {
		log.Error("index bootstrap failed", "err", err)
		os.Exit(1)
	}

	// tracing
	traceCtx, cancelTrace := config.WithTimeout(5 * time.Second)
	shutdownTracer, err := observability.InitTracer(traceCtx, observability.TracerConfig{
		ServiceName: "storefront-api",
		Env:         cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
	})
	cancelTrace()

	if err != nil {
		log.Warn("tracer init failed, continuing without traces", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	router := httpx.NewRouter(log, database, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}

		if err := database.Client().Disconnect(ctx); err != nil {
			log.Error("mongo disconnect failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
