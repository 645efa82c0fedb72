package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"membergate/internal/authbridge"
	"membergate/internal/claims/service"
	"membergate/internal/history"
	memberstore "membergate/internal/member/store"
	"membergate/internal/platform/config"
	"membergate/internal/platform/database"
	"membergate/internal/platform/logger"
	"membergate/internal/platform/metrics"
	"membergate/internal/resourceserver"
	"membergate/internal/scope"
	httptransport "membergate/internal/transport/http"
	"membergate/pkg/validation"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := validation.Validate(cfg); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing membergate",
		"addr", cfg.Addr,
		"issuer", cfg.TokenIssuer,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	var members service.MemberStore
	if pool != nil {
		members = memberstore.NewPostgres(pool.DB())
		log.Info("using postgres member store")
	} else {
		members = memberstore.NewInMemory()
		log.Warn("no database url configured, using in-memory member store")
	}

	m := metrics.New()
	catalog := scope.NewCatalog(log)

	policies := config.NewMapStore()
	config.LoadPolicies(policies, cfg.ClientPolicies)

	claims := service.NewService(members,
		service.WithLogger(log),
		service.WithMetrics(m),
	)

	validator := resourceserver.NewValidator(cfg.TokenSigningKey, cfg.TokenIssuer)

	recorder := history.NewRecorder(history.NewMemorySink(), log)
	sessions := authbridge.NewMemorySessionStore()
	bridge := authbridge.New(
		authbridge.NoHostAuthenticator{},
		sessions,
		recorder,
		authbridge.LogFlash{Logger: log},
		authbridge.Superadmin{Login: cfg.SuperadminLogin, PasswordHash: cfg.SuperadminHash},
		authbridge.WithLogger(log),
		authbridge.WithMetrics(m),
	)

	handler := httptransport.NewHandler(validator, claims, bridge, policies, catalog, log)
	router := httptransport.NewRouter(handler, log, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if pool != nil {
			if err := pool.Close(); err != nil {
				log.Warn("closing database pool", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
