package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"hotel-nepal/cache"
	"hotel-nepal/config"
	"hotel-nepal/events"
	"hotel-nepal/observability"
	"hotel-nepal/routes"
	"hotel-nepal/store"
	"hotel-nepal/store/memory"
	"hotel-nepal/store/sqlstore"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	logger, closer, err := observability.NewLogger(cfg.AppEnv, cfg.LogFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.LogFile).Msg("open log file")
	}
	defer closer.Close()
	log.Logger = logger
	if envErr != nil {
		log.Info().Msg(".env not found; using environment variables")
	}
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, storeName, db := openStore(ctx, cfg, logger)
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	deps := routes.Deps{
		Repos:     repos,
		Registry:  observability.InitRegistry(),
		Logger:    logger,
		StoreName: storeName,
	}

	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; hotel cache disabled")
			_ = rc.Close()
		} else {
			defer rc.Close()
			deps.Cache = rc
			log.Info().Str("addr", cfg.RedisAddr).Msg("hotel cache enabled")
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := events.NewPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unreachable; booking events disabled")
		} else {
			defer pub.Close()
			deps.Events = pub
			log.Info().Str("exchange", events.ExchangeName).Msg("booking events enabled")
		}
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	servers := []*http.Server{srv}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.MetricsHandler(deps.Registry))
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Str("store", storeName).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(sctx))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped gracefully")
}

// openStore decides once which store serves requests. With a reachable
// database the relational store is primary and, when enabled, failed
// operations are replayed on memory. Without one, memory serves everything.
func openStore(ctx context.Context, cfg config.Config, l zerolog.Logger) (store.Repositories, string, *gorm.DB) {
	mem := memory.NewSeeded(cfg.UploadDir)

	db, err := config.ConnectDatabase(ctx, cfg, l)
	if err != nil {
		l.Warn().Err(err).Str("driver", cfg.DBDriver).
			Msg("database unavailable; using in-memory store. Data will not survive a restart")
		return mem.Repositories(), "memory", nil
	}
	l.Info().Str("driver", cfg.DBDriver).Msg("database connected")

	primary := sqlstore.New(db, cfg.UploadDir).Repositories()
	if !cfg.StoreFallbackOnError {
		return primary, cfg.DBDriver, db
	}
	l.Warn().Msg("store fallback enabled: writes answered by memory during database errors are not copied back")
	return store.NewFallback(l, true).Wrap(primary, mem.Repositories()), cfg.DBDriver, db
}
