package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nursery/docs"
	"nursery/pkg/api"
	"nursery/pkg/config"
	"nursery/pkg/logger"
	"nursery/pkg/menu"
	"nursery/pkg/nursery"
	"nursery/pkg/nursery/memory"
	"nursery/pkg/otel"
	"nursery/pkg/session"
	sessionmem "nursery/pkg/session/memory"
	sessionredis "nursery/pkg/session/redis"
)

//go:generate swag init -g main.go -d ./,../../pkg/api,../../pkg/nursery -o ../../docs

// @title Nursery API
// @version 1.0
// @description API for managing a plant nursery's stock and purchases
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Cookie
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "nursery:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("nursery", flag.ContinueOnError)
	demo := fs.Bool("demo", false, "seed the nursery with sample plants and purchases")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := memory.New()
	if *demo {
		seed(repo)
	}

	switch fs.Arg(0) {
	case "", "menu":
		// Logs go to stderr so they do not interleave with the menu.
		log := logger.New(os.Stderr, cfg.LogLevel, cfg.ServiceName, nil)
		defer log.Sync()
		err := menu.New(repo, os.Stdin, os.Stdout, log, cfg.Stats).Run(ctx)
		if errors.Is(err, context.Canceled) {
			log.Info(context.Background(), "interrupted")
			return nil
		}
		return err
	case "serve":
		log := logger.New(os.Stdout, cfg.LogLevel, cfg.ServiceName, otel.GetTraceID)
		defer log.Sync()
		return serve(ctx, cfg, repo, log)
	default:
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}
}

func serve(ctx context.Context, cfg config.Config, repo nursery.Repository, log *logger.Logger) error {
	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Host:        cfg.OTELHost,
		Probability: cfg.TraceProbability,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())

	sessions, closeSessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	docs.SwaggerInfo.Host = cfg.Addr

	srv := api.New(api.Config{
		Repo:       repo,
		Sessions:   sessions,
		SessionTTL: cfg.SessionTTL,
		Stats:      cfg.Stats,
		Log:        log,
		Tracer:     tp.Tracer(cfg.ServiceName),
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "tls", cfg.TLS())
		if cfg.TLS() {
			errCh <- httpServer.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server closed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func newSessionStore(ctx context.Context, cfg config.Config, log *logger.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn(ctx, "REDIS_ADDR not set, sessions kept in memory")
		return sessionmem.New(), func() {}, nil
	}
	store, err := sessionredis.New(sessionredis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return store, func() { store.Close() }, nil
}

// seed fills repo with the sample stock used for demonstrations.
func seed(repo nursery.Repository) {
	repo.AddPlant(nursery.NewFloweringPlant("Rose", "Rosa", 6, 45, 60, true))
	repo.AddPlant(nursery.NewFloweringPlant("Tulip", "Tulipa", 5, 16, 10, false))
	repo.AddPlant(nursery.NewPlant("Fern", "Pteridophyte", 3, 40, 55))
	for i := 0; i < 6; i++ {
		repo.RecordCustomerPurchase()
	}
}
