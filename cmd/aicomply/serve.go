package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/api"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/audit"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/catalog"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/config"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/evaluation"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/exportstore"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/ledger"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/observability"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

//nolint:gocognit
func runServer() {
	fmt.Fprintf(os.Stdout, "%saicomply server starting...%s\n", ColorBold+ColorBlue, ColorReset)
	ctx := context.Background()
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	obs, err := observability.New(ctx, &observability.Config{
		ServiceName:    "aicomply",
		ServiceVersion: inference.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     1.0,
		BatchTimeout:   5 * time.Second,
		Enabled:        cfg.OTelEnabled,
		Insecure:       true,
	})
	if err != nil {
		log.Fatalf("Failed to init observability: %v", err)
	}

	records := openLedger(ctx, cfg)

	exports, err := exportstore.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to init export store: %v", err)
	}

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
	}
	var background *triple.Store
	if cfg.BackgroundPath != "" {
		background, err = catalog.LoadBackground(cfg.BackgroundPath)
		if err != nil {
			log.Fatalf("Failed to load background graph: %v", err)
		}
	}

	svc, err := evaluation.New(evaluation.Config{
		Catalog:    cat,
		Background: background,
		Engine:     inference.Config{MaxPasses: cfg.MaxPasses, Parallel: cfg.Parallel, Workers: cfg.Workers},
		Ledger:     records,
		Audit:      audit.NewLogger(),
		Obs:        obs,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Failed to init evaluation service: %v", err)
	}

	var limiter api.RateLimiter
	if cfg.RedisURL != "" {
		limiter = api.NewRedisRateLimiter(cfg.RedisURL, "", 0, cfg.RateLimitRPS, int(cfg.RateLimitRPS)*2)
		log.Println("[aicomply] rate limit: redis")
	} else {
		limiter = api.NewLocalRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS)*2)
		log.Println("[aicomply] rate limit: local")
	}

	validator := api.NewJWTValidator(cfg.JWTSecret)
	if validator == nil {
		log.Println("[aicomply] auth: disabled (JWT_SECRET not set)")
	}

	server := api.NewServer(svc, records, exports, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(limiter, validator),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[aicomply] listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[aicomply] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	_ = obs.Shutdown(shutdownCtx)
}

// openLedger builds the configured ledger backend. The memory driver keeps
// records only for the process lifetime.
func openLedger(ctx context.Context, cfg *config.Config) ledger.Store {
	switch cfg.LedgerDriver {
	case "memory":
		log.Println("[aicomply] ledger: in-memory")
		return ledger.NewMemoryStore()
	case "sqlite":
		s, err := ledger.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite ledger: %v", err)
		}
		log.Printf("[aicomply] ledger: sqlite (%s)", cfg.SQLitePath)
		return s
	case "postgres":
		s, err := ledger.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open postgres ledger: %v", err)
		}
		log.Println("[aicomply] ledger: postgres")
		return s
	default:
		log.Fatalf("Unknown LEDGER_DRIVER: %s", cfg.LedgerDriver)
		return nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
