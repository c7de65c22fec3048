package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cognitia-web/Cognitia-Scratch/api/controllers"
	"github.com/cognitia-web/Cognitia-Scratch/api/middleware"
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
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs. Keeping it a
// struct keeps main readable as the service count grows.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DBPinger db.Pinger
	Redis    *redis.Client
	Blobs    controllers.Pinger

	Sessions session.AccessSessionChecker

	AuthService         auth.Service
	UserRepo            *users.Repository
	TaskService         *tasks.Service
	HabitService        *habits.Service
	RewardService       *rewards.Service
	WorkoutService      *workouts.Service
	NutritionService    *nutrition.Service
	CourseService       *courses.Service
	ExamService         *exams.Service
	FlashcardService    *flashcards.Service
	AccountService      *account.Service
	StudyService        *study.Service
	DashboardService    *dashboard.Service
	GuardianService     *guardian.Service
	VerificationService verification.Service
	Sweeper             *videos.Sweeper
	Reconciler          *videos.Reconciler
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(p)))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, p.Sessions, logg)).
			Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", controllers.TasksCreate(p.TaskService, logg))
			r.Get("/", controllers.TasksList(p.TaskService, logg))
			r.Get("/{taskID}", controllers.TasksGet(p.TaskService, logg))
			r.Patch("/{taskID}", controllers.TasksUpdate(p.TaskService, logg))
			r.Post("/{taskID}/complete", controllers.TasksComplete(p.TaskService, logg))
			r.Delete("/{taskID}", controllers.TasksDelete(p.TaskService, logg))
		})

		r.Route("/habits", func(r chi.Router) {
			r.Post("/", controllers.HabitsCreate(p.HabitService, logg))
			r.Get("/", controllers.HabitsList(p.HabitService, logg))
			r.Post("/{habitID}/log", controllers.HabitsLog(p.HabitService, logg))
			r.Delete("/{habitID}", controllers.HabitsDelete(p.HabitService, logg))
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Get("/balance", controllers.RewardsBalance(p.RewardService, logg))
			r.Get("/history", controllers.RewardsHistory(p.RewardService, logg))
			r.Post("/convert", controllers.RewardsConvert(p.RewardService, logg))
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Post("/", controllers.WorkoutsCreate(p.WorkoutService, logg))
			r.Get("/", controllers.WorkoutsList(p.WorkoutService, logg))
			r.Get("/{workoutID}", controllers.WorkoutsGet(p.WorkoutService, logg))
			r.Delete("/{workoutID}", controllers.WorkoutsDelete(p.WorkoutService, logg))
		})

		r.Route("/food", func(r chi.Router) {
			r.Post("/", controllers.FoodCreate(p.NutritionService, logg))
			r.Get("/day", controllers.FoodDay(p.NutritionService, logg))
			r.Delete("/{entryID}", controllers.FoodDelete(p.NutritionService, logg))
		})

		r.Route("/courses", func(r chi.Router) {
			r.Post("/", controllers.CoursesCreate(p.CourseService, logg))
			r.Get("/", controllers.CoursesList(p.CourseService, logg))
			r.Get("/{courseID}", controllers.CoursesGet(p.CourseService, logg))
			r.Put("/{courseID}/progress", controllers.CoursesProgress(p.CourseService, logg))
		})

		r.Route("/exams", func(r chi.Router) {
			r.Post("/", controllers.ExamsCreate(p.ExamService, logg))
			r.Get("/", controllers.ExamsList(p.ExamService, logg))
			r.Delete("/{examID}", controllers.ExamsDelete(p.ExamService, logg))
		})

		r.Route("/flashcards", func(r chi.Router) {
			r.Post("/", controllers.FlashcardsCreate(p.FlashcardService, logg))
			r.Get("/", controllers.FlashcardsList(p.FlashcardService, logg))
			r.Delete("/{cardID}", controllers.FlashcardsDelete(p.FlashcardService, logg))
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/export", controllers.DataExport(p.AccountService, logg))
			r.Delete("/", controllers.DataDelete(p.AccountService, p.AuthService, logg))
		})

		r.Route("/study", func(r chi.Router) {
			r.Post("/messages", controllers.StudySend(p.StudyService, logg))
			r.Get("/messages", controllers.StudyHistory(p.StudyService, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(p.DashboardService, logg))

		r.Route("/verifications", func(r chi.Router) {
			r.Get("/prompt", controllers.VerificationPrompt(p.VerificationService, logg))
			r.Post("/", controllers.VerificationSubmit(p.VerificationService, cfg.Video, logg))
			r.Get("/", controllers.VerificationList(p.VerificationService, logg))
			r.Get("/{verificationID}", controllers.VerificationGet(p.VerificationService, logg))
		})

		r.Get("/videos/{videoID}/download", controllers.VideoDownload(p.VerificationService, logg))

		r.Route("/guardian", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleGuardian), logg))
			r.Get("/report", controllers.GuardianReport(p.GuardianService, p.UserRepo, logg))
		})
	})

	r.Route("/api/internal/videos", func(r chi.Router) {
		r.Use(middleware.CronSecret(cfg.Video.CronSharedSecret, logg))
		r.Post("/cleanup", controllers.VideosCleanup(p.Sweeper, logg))
		r.Post("/reconcile", controllers.VideosReconcile(p.Reconciler, logg))
	})

	return r
}

func readinessDeps(p RouterParams) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if p.DBPinger != nil {
		deps["database"] = p.DBPinger
	}
	if p.Redis != nil {
		deps["redis"] = p.Redis
	}
	if p.Blobs != nil {
		deps["blob store"] = p.Blobs
	}
	return deps
}
