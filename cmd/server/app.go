/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-24 10:35:28
 * @LastEditTime: 2026-10-17 16:15:28
 * @LastEditors: 安知鱼
 */
// blogcms/cmd/server/app.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anzhiyu-c/blogcms/internal/app/listener"
	"github.com/anzhiyu-c/blogcms/internal/app/middleware"
	"github.com/anzhiyu-c/blogcms/internal/app/task"
	"github.com/anzhiyu-c/blogcms/internal/infra/persistence/static"
	"github.com/anzhiyu-c/blogcms/internal/infra/router"
	"github.com/anzhiyu-c/blogcms/internal/pkg/event"
	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/internal/pkg/version"
	"github.com/anzhiyu-c/blogcms/pkg/config"
	article_handler "github.com/anzhiyu-c/blogcms/pkg/handler/article"
	comment_handler "github.com/anzhiyu-c/blogcms/pkg/handler/comment"
	rss_handler "github.com/anzhiyu-c/blogcms/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/blogcms/pkg/handler/sitemap"
	statistics_handler "github.com/anzhiyu-c/blogcms/pkg/handler/statistics"
	version_handler "github.com/anzhiyu-c/blogcms/pkg/handler/version"
	article_service "github.com/anzhiyu-c/blogcms/pkg/service/article"
	comment_service "github.com/anzhiyu-c/blogcms/pkg/service/comment"
	"github.com/anzhiyu-c/blogcms/pkg/service/rss"
	"github.com/anzhiyu-c/blogcms/pkg/service/sitemap"
	"github.com/anzhiyu-c/blogcms/pkg/service/statistics"
	"github.com/anzhiyu-c/blogcms/pkg/service/utility"
)

// shutdownTimeout 收到退出信号后等待进行中请求的最长时间
const shutdownTimeout = 10 * time.Second

// Options 命令行传入的启动参数
type Options struct {
	ConfigPath string
	Debug      bool
}

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg        *config.Config
	engine     *gin.Engine
	taskBroker *task.Broker
	source     *static.Source
	eventBus   *event.EventBus
	cacheSvc   utility.CacheService
	commentSvc *comment_service.Service
	log        *zap.Logger
}

// PrintBanner 打印启动横幅
func (a *App) PrintBanner() {
	a.log.Info("--------------------------------------------------------")
	a.log.Info(" BlogCMS", zap.String("version", version.GetVersionString()))
	a.log.Info("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp(opts Options) (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if opts.Debug {
		cfg.Set(config.KeyServerDebug, true)
	}
	debug := cfg.GetBool(config.KeyServerDebug)

	zl, err := logger.Init(debug)
	if err != nil {
		return nil, nil, err
	}
	log := zl.Named("app")

	// --- Phase 2: 初始化基础设施 ---
	// 尝试连接 Redis（如果失败，将自动降级到内存缓存）
	redisClient := utility.NewRedisClient(context.Background(), cfg)
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)

	source, err := static.NewSource(cfg.GetString(config.KeyContentPath))
	if err != nil {
		utility.StopCacheService(cacheSvc)
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, nil, fmt.Errorf("加载内容数据集失败: %w", err)
	}
	eventBus := event.NewEventBus()

	// --- Phase 3: 初始化数据仓库层 ---
	articleRepo := static.NewArticleRepo(source)
	commentRepo := static.NewCommentRepo(source)

	// --- Phase 4: 初始化业务逻辑层 ---
	siteURL := cfg.SiteURL()
	articleSvc := article_service.NewService(articleRepo)
	commentSvc := comment_service.NewService(articleRepo, commentRepo, cacheSvc, eventBus, cfg.SessionTTL())
	rssSvc := rss.NewService(articleRepo, cacheSvc, rss.SiteInfo{
		Name:        cfg.GetString(config.KeySiteName),
		Description: cfg.GetString(config.KeySiteDescription),
	})
	sitemapSvc := sitemap.NewService(articleRepo, cfg.SiteURL)
	statSvc := statistics.NewActivityStatService(cacheSvc)

	// --- Phase 5: 后台任务与事件监听 ---
	feedItemCount := cfg.GetInt(config.KeyFeedItemCount)
	taskBroker := task.NewBroker(rssSvc, func() *rss.RSSOptions {
		return &rss.RSSOptions{ItemCount: feedItemCount, BaseURL: cfg.SiteURL(), BuildTime: time.Now()}
	}, commentSvc, statSvc)

	listener.NewCommentActivityListener(eventBus, statSvc)
	listener.NewContentReloadListener(eventBus, taskBroker)
	source.OnReload(func(ds *static.Dataset) {
		eventBus.Publish(event.ContentReloaded, len(ds.Posts))
	})

	// --- Phase 6: 初始化表现层 (Handlers) ---
	appRouter := router.NewRouter(
		article_handler.NewHandler(articleSvc, siteURL),
		comment_handler.NewHandler(commentSvc),
		rss_handler.NewHandler(rssSvc, siteURL, feedItemCount),
		sitemap_handler.NewHandler(sitemapSvc),
		statistics_handler.NewStatisticsHandler(statSvc),
		version_handler.NewHandler(),
	)

	// --- Phase 7: 配置 Gin 引擎 ---
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger.Named("http")))
	engine.Use(middleware.Cors(cfg.AllowedOrigins()))
	appRouter.Setup(engine)

	app := &App{
		cfg:        cfg,
		engine:     engine,
		taskBroker: taskBroker,
		source:     source,
		eventBus:   eventBus,
		cacheSvc:   cacheSvc,
		commentSvc: commentSvc,
		log:        log,
	}

	cleanup := func() {
		log.Info("执行清理操作...")
		taskBroker.Stop()
		source.Stop()
		eventBus.Shutdown()
		utility.StopCacheService(cacheSvc)
		if redisClient != nil {
			log.Info("关闭 Redis 连接...")
			if err := redisClient.Close(); err != nil {
				log.Warn("关闭 Redis 连接失败", zap.Error(err))
			}
		}
		logger.Sync()
	}

	return app, cleanup, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

// CommentService 返回评论会话服务
func (a *App) CommentService() *comment_service.Service {
	return a.commentSvc
}

// Run 启动后台任务与 HTTP 服务，阻塞直到收到 SIGINT/SIGTERM 或服务出错
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// Serve 与 Run 相同，但由调用方通过 ctx 控制退出
func (a *App) Serve(ctx context.Context) error {
	if err := a.taskBroker.RegisterCronJobs(); err != nil {
		return fmt.Errorf("注册定时任务失败: %w", err)
	}
	if err := a.source.Watch(ctx); err != nil {
		a.log.Warn("⚠️ 内容数据集热更新不可用", zap.Error(err))
	}
	a.taskBroker.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("🚀 应用程序启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服务异常退出: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("收到退出信号，正在优雅关闭...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Stop 停止后台任务，可重复调用
func (a *App) Stop() {
	if a.taskBroker != nil {
		a.taskBroker.Stop()
		a.log.Info("任务调度器已停止。")
	}
}
