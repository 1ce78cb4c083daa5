package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajoroapp/ajoro-backend/internal/api"
	"github.com/ajoroapp/ajoro-backend/internal/auth"
	"github.com/ajoroapp/ajoro-backend/internal/config"
	"github.com/ajoroapp/ajoro-backend/internal/db"
	"github.com/ajoroapp/ajoro-backend/internal/logger"
	"github.com/ajoroapp/ajoro-backend/internal/metrics"
	"github.com/ajoroapp/ajoro-backend/internal/repository/postgres"
	"github.com/ajoroapp/ajoro-backend/internal/services"
	"github.com/ajoroapp/ajoro-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		TM:         tm,
		UserSvc:    services.NewUserService(repos.Users),
		ProfileSvc: services.NewProfileService(repos.Profiles),
		CircleSvc:  services.NewCircleService(repos.Circles, repos.Members, repos.Contributions),
		InviteSvc:  services.NewInvitationService(repos.Invitations, repos.Circles, repos.Members, wp),
		MemberSvc:  services.NewMemberService(repos.Circles, repos.Members, wp),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
