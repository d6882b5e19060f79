package app

import (
	"context"
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/controller"
	"edu_quiz_backend/internal/repository"
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"
	"edu_quiz_backend/pkg/configwatcher"
	"edu_quiz_backend/pkg/database"
	"edu_quiz_backend/pkg/logger"
	"edu_quiz_backend/pkg/monitoring"
	"edu_quiz_backend/pkg/security"
	"edu_quiz_backend/pkg/tracing"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	stopWatcher     context.CancelFunc
	configCallbacks []func(config.QuizConfig)
}

type repositories struct {
	user       *repository.UserRepository
	content    *repository.ContentRepository
	reader     *repository.CachedContentReader
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	attempt    *repository.AttemptRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	content    *service.ContentService
	enrollment *service.EnrollmentService
	progress   *service.ProgressService
	quiz       *service.QuizService
}

type controllers struct {
	auth     *controller.AuthController
	course   *controller.CourseController
	progress *controller.ProgressController
	quiz     *controller.QuizController
	admin    *controller.AdminContentController
	health   *controller.HealthController
}

// RegisterConfigCallback 注册 quiz 配置热更新回调
func (a *App) RegisterConfigCallback(callback func(config.QuizConfig)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	content := repository.NewContentRepository(db)
	progress := repository.NewProgressRepository(db)
	return &repositories{
		user:       repository.NewUserRepository(db),
		content:    content,
		reader:     repository.NewCachedContentReader(content, rdb, cfg.Quiz.ContentCacheTTL),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   progress,
		attempt:    repository.NewAttemptRepository(db, progress),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.content, repos.reader)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.progress, repos.content)
	s.progress = service.NewProgressService(repos.progress, repos.content, repos.enrollment)
	s.quiz = service.NewQuizService(repos.reader, repos.attempt, repos.content, repos.enrollment, s.storage, cfg.Quiz)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		course:   controller.NewCourseController(s.content, s.enrollment, s.progress),
		progress: controller.NewProgressController(s.progress),
		quiz:     controller.NewQuizController(s.quiz),
		admin:    controller.NewAdminContentController(s.content),
		health:   controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已建立的连接组装应用；rdb 可为 nil，此时不使用内容缓存
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	// 热更新：测验默认值与缓存时长
	app.RegisterConfigCallback(app.services.quiz.UpdateConfig)
	app.RegisterConfigCallback(func(q config.QuizConfig) {
		repos.reader.SetTTL(q.ContentCacheTTL)
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal && cfg.Storage.LocalPath != "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis 只用于内容缓存，不可用时降级为直接读库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, content cache disabled", zap.Error(err))
		rdb = nil
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edu-quiz-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.startConfigWatcher()
	return app
}

func (a *App) startConfigWatcher() {
	if a.Config.ConfigFile == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatcher = cancel

	go func() {
		err := configwatcher.WatchQuizConfig(ctx, a.Config.ConfigFile, configwatcher.DefaultDebounce, func(q config.QuizConfig) {
			for _, cb := range a.configCallbacks {
				cb(q)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放后台资源：配置监听、测验会话、追踪与连接
func (a *App) Close(ctx context.Context) {
	if a.stopWatcher != nil {
		a.stopWatcher()
	}
	if a.services != nil {
		if err := a.services.quiz.Shutdown(ctx); err != nil {
			logger.Log.Warn("quiz shutdown incomplete", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
