package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cognitia-web/Cognitia-Scratch/internal/cron"
	"github.com/cognitia-web/Cognitia-Scratch/internal/videos"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/metrics"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/migrate"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/redis"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/storage/blob"
)

const lockKeyFormat = "cognitia:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	blobStore, err := blob.NewStore(context.Background(), cfg.Video, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open blob store", err)
		os.Exit(1)
	}

	videoRepo := videos.NewRepository(dbClient.DB())
	verificationMetrics := metrics.NewVerificationMetrics(prometheus.DefaultRegisterer)

	sweeper, err := videos.NewSweeper(videos.SweeperParams{
		Logger:  logg,
		Repo:    videoRepo,
		Blobs:   blobStore,
		Metrics: verificationMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create retention sweeper", err)
		os.Exit(1)
	}

	reconciler, err := videos.NewReconciler(videos.ReconcilerParams{
		Logger: logg,
		Repo:   videoRepo,
		Blobs:  blobStore,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orphan reconciler", err)
		os.Exit(1)
	}

	retentionJob, err := cron.NewVideoRetentionJob(cron.VideoRetentionJobParams{
		Logger:  logg,
		Sweeper: sweeper,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create retention job", err)
		os.Exit(1)
	}

	orphanJob, err := cron.NewVideoOrphanJob(cron.VideoOrphanJobParams{
		Logger:     logg,
		Reconciler: reconciler,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orphan job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(retentionJob, orphanJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
