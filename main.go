// The preview server serves the wasm bundle from STATIC_DIR (default
// "static"). Build it with `go generate` before `go run .`.
//
//go:generate mkdir -p static
//go:generate env GOOS=js GOARCH=wasm go build -o static/main.wasm ./cmd/contactform-wasm
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" static/ 2>/dev/null || cp \"$(go env GOROOT)/misc/wasm/wasm_exec.js\" static/"
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payback159/contactform/pkg/config"
	"github.com/payback159/contactform/pkg/handlers"
	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/messages"
	"github.com/payback159/contactform/pkg/security"
)

func main() {
	if err := run(); err != nil {
		logging.LogCritical("Server terminated", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.InitLogger(cfg.LogLevel)

	catalog := messages.Default()
	if cfg.MessagesFile != "" {
		catalog, err = messages.Load(cfg.MessagesFile)
		if err != nil {
			return fmt.Errorf("load messages: %w", err)
		}
	}

	templates, err := handlers.ParseTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := security.NewRateLimiter(ctx)
	h := handlers.NewHandler(templates, catalog, cfg.StaticDir)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           security.AccessLog(security.Headers(limiter.Middleware(h.Routes()))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogInfo("Preview server starting",
			"addr", srv.Addr,
			"env", cfg.Env,
			"static_dir", cfg.StaticDir,
			"custom_messages", cfg.MessagesFile != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.LogInfo("Shutdown requested", "timeout", cfg.ShutdownTimeout.String(), "uptime", logging.Uptime().String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-limiter.Done()
	logging.LogInfo("Server stopped")
	return nil
}
