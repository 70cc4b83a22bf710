package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hgbdice/internal/config"
	"hgbdice/internal/scenario"
	"hgbdice/internal/store"
	"hgbdice/internal/telemetry"
	"hgbdice/internal/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadServer()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}
	log, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTelEndpoint, cfg.ServiceName)
	if err != nil {
		log.Error("setup tracing", zap.Error(err))
		return 1
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("shutdown tracing", zap.Error(err))
		}
	}()

	examples, err := scenario.LoadDir(cfg.ScenarioDir)
	if err != nil {
		log.Error("load example scenarios", zap.String("dir", cfg.ScenarioDir), zap.Error(err))
		return 1
	}

	srv := &web.Server{
		Store:    store.NewMemoryStore[web.Run](cfg.MaxRuns),
		Tmpl:     web.Templates(),
		Log:      log,
		Examples: examples,
		MaxBody:  cfg.MaxBodyBytes,
	}
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.Int("examples", len(examples)))
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve", zap.Error(err))
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
			return 1
		}
		log.Info("stopped")
	}
	return 0
}
