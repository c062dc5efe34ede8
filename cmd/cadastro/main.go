package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/odyssey-erp/cadastro/cmd/cadastro/cli"
	"github.com/odyssey-erp/cadastro/internal/app"
	"github.com/odyssey-erp/cadastro/internal/cep"
	"github.com/odyssey-erp/cadastro/internal/masterdata/companies"
	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
	"github.com/odyssey-erp/cadastro/internal/observability"
	"github.com/odyssey-erp/cadastro/internal/platform/db"
	"github.com/odyssey-erp/cadastro/internal/platform/httpx"
)

const usage = `usage: cadastro [serve | migrate | cep <code> [--json]]`

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		err = serve(ctx, cfg, logger)
	case "migrate":
		err = migrate(ctx, cfg, logger)
	case "cep":
		os.Exit(lookupCEP(ctx, cfg, args))
	default:
		_, _ = fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		logger.Error(cmd+" failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer dbpool.Close()

	if cfg.MigrateOnStart {
		if err := db.Migrate(dbpool, logger); err != nil {
			return err
		}
	}

	metrics := observability.NewMetrics()
	resolver := app.NewCEPResolver(cfg, logger, metrics)
	validator := httpx.NewValidator()

	supplierRepo := suppliers.NewRepository(dbpool)
	supplierService := suppliers.NewService(supplierRepo, resolver, logger)
	companyRepo := companies.NewRepository(dbpool)
	companyService := companies.NewService(companyRepo, resolver, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		CEPHandler:       cep.NewHandler(logger, resolver),
		CompaniesHandler: companies.NewHandler(logger, companyService, validator),
		SuppliersHandler: suppliers.NewHandler(logger, supplierService, validator),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	return nil
}

func migrate(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer dbpool.Close()
	return db.Migrate(dbpool, logger)
}

// lookupCEP accepts the flag before or after the code. Logs go to stderr so
// --json output stays parseable.
func lookupCEP(ctx context.Context, cfg *app.Config, args []string) int {
	var flags, positional []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
		} else {
			positional = append(positional, arg)
		}
	}
	fs := flag.NewFlagSet("cep", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(flags); err != nil {
		return 1
	}
	if len(positional) != 1 {
		_, _ = fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	opsCLI, err := cli.NewCEPOpsCLI(app.NewCEPResolver(cfg, logger, nil))
	if err != nil {
		logger.Error("cep cli", slog.Any("error", err))
		return 1
	}
	return opsCLI.LookupCommand(ctx, cli.CEPLookupOptions{
		Code:       positional[0],
		JSONOutput: *jsonOutput,
	})
}
