package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menara_math_backend/internal/config"
	"menara_math_backend/internal/controller"
	"menara_math_backend/internal/repository"
	"menara_math_backend/internal/service"
	"menara_math_backend/pkg/database"
	"menara_math_backend/pkg/logger"
	"menara_math_backend/pkg/monitoring"
	"menara_math_backend/pkg/security"
	"menara_math_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	stopSweep       chan struct{}
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	material *repository.MaterialRepository
	question *repository.QuestionRepository
	session  *repository.PracticeSessionRepository
	attempt  *repository.AttemptRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	material *service.MaterialService
	practice *service.PracticeService
	progress *service.ProgressService
}

type controllers struct {
	auth     *controller.AuthController
	material *controller.MaterialController
	practice *controller.PracticeController
	progress *controller.ProgressController
	admin    *controller.AdminContentController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		material: repository.NewMaterialRepository(db),
		question: repository.NewQuestionRepository(db),
		session:  repository.NewPracticeSessionRepository(db),
		attempt:  repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	picker := service.NewQuestionPicker(repos.question)

	return &services{
		auth:     service.NewAuthService(repos.user, cfg),
		storage:  storage,
		material: service.NewMaterialService(repos.material, repos.question, rdb),
		practice: service.NewPracticeService(repos.session, repos.attempt, repos.question, repos.material, picker, cfg, db),
		progress: service.NewProgressService(repos.session, repos.attempt, repos.material, cfg),
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		material: controller.NewMaterialController(s.material),
		practice: controller.NewPracticeController(s.practice),
		progress: controller.NewProgressController(s.progress),
		admin:    controller.NewAdminContentController(s.material, s.storage),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the stale session sweep so sessions left open by
// closed clients still end up ABANDONED.
func (a *App) startBackgroundTasks(s *services) {
	a.stopSweep = make(chan struct{})
	go func() {
		ticker := time.NewTicker(a.Config.Practice.SweepInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.practice.SweepStaleSessions(); err != nil {
					logger.Log.Error("stale session sweep error", zap.Error(err))
				}
			case <-a.stopSweep:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("menara-math", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopSweep != nil {
		close(a.stopSweep)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
