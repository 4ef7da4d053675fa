package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/internal/controller"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/service"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/configwatcher"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/database"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/logger"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/monitoring"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/security"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/tracing"
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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	profile       *repository.ProfileRepository
	text          *repository.TextRepository
	question      *repository.QuestionRepository
	response      *repository.ResponseRepository
	annotation    *repository.AnnotationRepository
	activeReading *repository.ActiveReadingRepository
	paragraph     *repository.ParagraphRepository
	session       *repository.SessionRepository
	activityLog   *repository.ActivityLogRepository
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	session       *service.SessionService
	content       *service.ContentService
	annotation    *service.AnnotationService
	activeReading *service.ActiveReadingService
	paragraph     *service.ParagraphService
	activity      *service.ActivityService
}

type controllers struct {
	auth          *controller.AuthController
	dashboard     *controller.DashboardController
	content       *controller.ContentController
	annotation    *controller.AnnotationController
	activeReading *controller.ActiveReadingController
	paragraph     *controller.ParagraphController
	session       *controller.SessionController
	activity      *controller.ActivityController
	studentAdmin  *controller.StudentAdminController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		profile:       repository.NewProfileRepository(db),
		text:          repository.NewTextRepository(db),
		question:      repository.NewQuestionRepository(db),
		response:      repository.NewResponseRepository(db),
		annotation:    repository.NewAnnotationRepository(db),
		activeReading: repository.NewActiveReadingRepository(db),
		paragraph:     repository.NewParagraphRepository(db),
		session:       repository.NewSessionRepository(db),
		activityLog:   repository.NewActivityLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, repos.profile, cfg)
	s.user = service.NewUserService(repos.user, repos.profile, repos.text, rdb)
	s.session = service.NewSessionService(repos.session, repos.text)
	s.content = service.NewContentService(repos.text, repos.question, repos.annotation, repos.response, repos.session, s.session)
	s.annotation = service.NewAnnotationService(repos.annotation, repos.text)
	s.activeReading = service.NewActiveReadingService(repos.activeReading, repos.text)
	s.paragraph = service.NewParagraphService(repos.paragraph, repos.activeReading, repos.text)
	s.activity = service.NewActivityService(repos.activityLog)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		dashboard:     controller.NewDashboardController(s.user),
		content:       controller.NewContentController(s.content, repos.profile),
		annotation:    controller.NewAnnotationController(s.annotation),
		activeReading: controller.NewActiveReadingController(s.activeReading),
		paragraph:     controller.NewParagraphController(s.paragraph),
		session:       controller.NewSessionController(s.session),
		activity:      controller.NewActivityController(s.activity),
		studentAdmin:  controller.NewStudentAdminController(s.user),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分散トレーシング
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

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
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("japanese-cbt-app", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// 設定ファイルのホットリロード。反映されるのは登録済みコールバックの範囲のみ
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		app.Config = reloaded
		for _, callback := range app.configCallbacks {
			callback(reloaded)
		}
		logger.Log.Info("Config reloaded")
	})

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

	// 割り込みシグナルを待ってグレースフルシャットダウン（タイムアウト5秒）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
