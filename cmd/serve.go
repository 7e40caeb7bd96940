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

	"github.com/mutaremalcolm/calorie-counter-app-sub000/config"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/controllers"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/routes"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := config.NewLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run database migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, migrate bool) error {
	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if migrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	if cfg.Monitoring.PrometheusEnabled {
		services.RegisterMetrics(prometheus.DefaultRegisterer)
	}
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := []byte(cfg.Auth.JWTSecret)
	hub := services.NewRealtimeHub(log)
	router := routes.SetupRouter(routes.Deps{
		Log:        log,
		JWTSecret:  secret,
		Metrics:    cfg.Monitoring.PrometheusEnabled,
		Auth:       controllers.NewAuthController(services.NewAuthService(db, secret, cfg.Auth.TokenTTL, log)),
		Calculator: controllers.NewCalculatorController(services.NewCalculatorService(log)),
		Dashboard:  controllers.NewDashboardController(services.NewDashboardService(db, hub, log)),
		Realtime:   controllers.NewRealtimeController(hub),
		Health:     controllers.NewHealthController(sqlDB),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
