package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cognitia-web/Cognitia-Scratch/api/routes"
	"github.com/cognitia-web/Cognitia-Scratch/internal/account"
	"github.com/cognitia-web/Cognitia-Scratch/internal/auth"
	"github.com/cognitia-web/Cognitia-Scratch/internal/courses"
	"github.com/cognitia-web/Cognitia-Scratch/internal/dashboard"
	"github.com/cognitia-web/Cognitia-Scratch/internal/exams"
	"github.com/cognitia-web/Cognitia-Scratch/internal/flashcards"
	"github.com/cognitia-web/Cognitia-Scratch/internal/guardian"
	"github.com/cognitia-web/Cognitia-Scratch/internal/habits"
	"github.com/cognitia-web/Cognitia-Scratch/internal/nutrition"
	"github.com/cognitia-web/Cognitia-Scratch/internal/rewards"
	"github.com/cognitia-web/Cognitia-Scratch/internal/study"
	"github.com/cognitia-web/Cognitia-Scratch/internal/tasks"
	"github.com/cognitia-web/Cognitia-Scratch/internal/users"
	"github.com/cognitia-web/Cognitia-Scratch/internal/verification"
	"github.com/cognitia-web/Cognitia-Scratch/internal/videos"
	"github.com/cognitia-web/Cognitia-Scratch/internal/workouts"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/auth/session"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/crypto"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/metrics"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/migrate"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/redis"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/storage/blob"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	keyring, err := crypto.NewKeyring(cfg.Video.MasterKey)
	if err != nil {
		logg.Error(context.Background(), "failed to build keyring", err)
		os.Exit(1)
	}

	blobStore, err := blob.NewStore(context.Background(), cfg.Video, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open blob store", err)
		os.Exit(1)
	}

	challenger, err := verification.NewChallenger(verification.ChallengerParams{
		Store:  redisClient,
		Keyer:  redisClient,
		Config: cfg.Liveness,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build liveness challenger", err)
		os.Exit(1)
	}

	verificationMetrics := metrics.NewVerificationMetrics(prometheus.DefaultRegisterer)

	gdb := dbClient.DB()
	userRepo := users.NewRepository(gdb)
	videoRepo := videos.NewRepository(gdb)
	recordRepo := verification.NewRepository(gdb)

	authService, err := auth.NewService(auth.ServiceParams{
		Logger:   logg,
		Users:    userRepo,
		Sessions: sessionManager,
		JWT:      cfg.JWT,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	rewardService, err := rewards.NewService(rewards.ServiceParams{
		Logger: logg,
		DB:     dbClient,
		Ledger: rewards.NewRepository(gdb),
		Config: cfg.Rewards,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rewards service", err)
		os.Exit(1)
	}

	taskService, err := tasks.NewService(tasks.ServiceParams{
		Logger:  logg,
		DB:      dbClient,
		Tasks:   tasks.NewRepository(gdb),
		Rewards: rewardService,
		Config:  cfg.Rewards,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tasks service", err)
		os.Exit(1)
	}

	habitService, err := habits.NewService(habits.ServiceParams{
		Logger:  logg,
		DB:      dbClient,
		Habits:  habits.NewRepository(gdb),
		Rewards: rewardService,
		Config:  cfg.Rewards,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create habits service", err)
		os.Exit(1)
	}

	verificationService, err := verification.NewService(verification.ServiceParams{
		Logger:      logg,
		DB:          dbClient,
		Videos:      videoRepo,
		Records:     recordRepo,
		Blobs:       blobStore,
		Keyring:     keyring,
		Challenger:  challenger,
		Rewards:     rewardService,
		Metrics:     verificationMetrics,
		VideoConfig: cfg.Video,
		RewardsCfg:  cfg.Rewards,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create verification service", err)
		os.Exit(1)
	}

	workoutService, err := workouts.NewService(logg, workouts.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create workouts service", err)
		os.Exit(1)
	}

	nutritionService, err := nutrition.NewService(logg, nutrition.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create nutrition service", err)
		os.Exit(1)
	}

	courseService, err := courses.NewService(logg, courses.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create courses service", err)
		os.Exit(1)
	}

	examService, err := exams.NewService(logg, exams.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create exams service", err)
		os.Exit(1)
	}

	flashcardService, err := flashcards.NewService(logg, flashcards.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create flashcards service", err)
		os.Exit(1)
	}

	accountService, err := account.NewService(logg, account.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	studyService, err := study.NewService(logg, study.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create study service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(logg, dashboard.NewRepository(gdb), rewardService)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	guardianService, err := guardian.NewService(logg, userRepo, dashboardService)
	if err != nil {
		logg.Error(context.Background(), "failed to create guardian service", err)
		os.Exit(1)
	}

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

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:              cfg,
			Logger:              logg,
			DBPinger:            dbClient,
			Redis:               redisClient,
			Blobs:               blobStore,
			Sessions:            sessionManager,
			AuthService:         authService,
			UserRepo:            userRepo,
			TaskService:         taskService,
			HabitService:        habitService,
			RewardService:       rewardService,
			WorkoutService:      workoutService,
			NutritionService:    nutritionService,
			CourseService:       courseService,
			ExamService:         examService,
			FlashcardService:    flashcardService,
			AccountService:      accountService,
			StudyService:        studyService,
			DashboardService:    dashboardService,
			GuardianService:     guardianService,
			VerificationService: verificationService,
			Sweeper:             sweeper,
			Reconciler:          reconciler,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
