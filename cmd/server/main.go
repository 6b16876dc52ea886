package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/truck-tco-calculator/internal/config"
	"github.com/anyulbade/truck-tco-calculator/internal/database"
	"github.com/anyulbade/truck-tco-calculator/internal/handler"
	"github.com/anyulbade/truck-tco-calculator/internal/middleware"
	"github.com/anyulbade/truck-tco-calculator/internal/moodle"
	"github.com/anyulbade/truck-tco-calculator/internal/repository"
	"github.com/anyulbade/truck-tco-calculator/internal/service"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var checks []handler.HealthCheck

	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		var err error
		pool, err = database.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		checks = append(checks, handler.HealthCheck{Name: "database", Pinger: pool})

		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
			if err := database.SeedCorridors(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("failed to seed corridors")
			}
		}
	}

	var local service.LocalStore
	switch cfg.LocalStore {
	case config.LocalStoreRedis:
		client := repository.NewRedisClient(repository.RedisOptions{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		store := repository.NewRedisLocalStore(client, cfg.LocalStoreKey)
		if err := store.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("address", cfg.RedisAddress).Msg("redis unreachable at startup")
		}
		local = store
		checks = append(checks, handler.HealthCheck{Name: "local_store", Pinger: store})
	default:
		local = repository.NewMemoryLocalStore()
	}

	moodleClient := moodle.NewClient(cfg.MoodleURL, cfg.MoodleAPIBase, cfg.MoodleTimeout)

	var remote service.RemoteStore = moodleClient
	if cfg.RemoteStore == config.RemoteStorePostgres {
		remote = repository.NewCalculationRepository(pool)
	}

	log.Info().
		Str("remote_store", cfg.RemoteStore).
		Str("local_store", cfg.LocalStore).
		Int("emissions_horizon_years", cfg.EmissionsHorizonYears).
		Msg("stores configured")

	calcService := service.NewCalculationService(tco.NewEngine(nil), remote, local, cfg.EmissionsHorizonYears)
	reportService := service.NewReportService()

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	handler.SetupSwagger(router, cfg.SwaggerSpec)
	handler.RegisterRoutes(router, handler.Handlers{
		Health:      handler.NewHealthHandler(checks...),
		Corridor:    handler.NewCorridorHandler(calcService),
		TCO:         handler.NewTCOHandler(calcService, reportService),
		Session:     handler.NewSessionHandler(moodleClient),
		Calculation: handler.NewCalculationHandler(calcService),
	}, moodleClient)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
