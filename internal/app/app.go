package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tubelens/core/internal/config"
	"github.com/tubelens/core/internal/database"
	"github.com/tubelens/core/internal/middleware"
	"github.com/tubelens/core/internal/modules/summarize"
	"github.com/tubelens/core/internal/modules/video"
	pkgcron "github.com/tubelens/core/internal/pkg/cron"
	pkgredis "github.com/tubelens/core/internal/pkg/redis"
	"github.com/tubelens/core/internal/pkg/taskqueue"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config, database, Redis, routes,
// background workers.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(buildCorsConfig(cfg)))
	router.Use(middleware.RateLimit(rc.Raw()))
	router.Use(middleware.Idempotence(rc.Raw()))

	provider := cfg.SummaryProvider()
	if provider == nil {
		return nil, errors.New("no enabled ai provider configured")
	}
	pipeline := summarize.NewPipeline(
		summarize.NewProviderGenerator(provider),
		logger.Named("summarize"),
		summarize.WithMaxAttempts(cfg.Summary.MaxAttempts),
		summarize.WithTurnTimeout(time.Duration(cfg.Summary.TurnTimeoutSeconds)*time.Second),
	)

	fetcher := video.NewYtDlpFetcher(cfg.Download.CookiesPath)
	downloader := video.NewSubtitleDownloader(cfg.Download, logger.Named("download"))
	videoSvc := video.NewService(rc, db, fetcher, downloader, pipeline,
		cfg.Subtitles, cfg.AI.TargetLanguage, logger.Named("video"))

	queue := taskqueue.NewService(rc)

	ctx, cancel := context.WithCancel(context.Background())

	worker := taskqueue.NewWorker(queue, video.TaskTypeSummary, 5*time.Second,
		summaryTaskHandler(videoSvc))
	go worker.Run(ctx)

	sched := pkgcron.New()
	registerCronJobs(sched, queue, logger)
	go sched.Start(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes(videoSvc, queue)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
