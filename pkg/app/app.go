// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	appcache "github.com/almostmoments/momentvault/pkg/cache"
	"github.com/almostmoments/momentvault/pkg/configs"
	"github.com/almostmoments/momentvault/pkg/internal/jobs"
	"github.com/almostmoments/momentvault/pkg/internal/router"
	"github.com/almostmoments/momentvault/pkg/internal/storage"
	"github.com/almostmoments/momentvault/pkg/log"
	"github.com/almostmoments/momentvault/pkg/metrics"
	"github.com/almostmoments/momentvault/pkg/middleware"
	"github.com/almostmoments/momentvault/pkg/rule"
	"github.com/almostmoments/momentvault/pkg/scheduler"
	"github.com/almostmoments/momentvault/pkg/tracing"
)

// 资产列表读缓存 TTL，列表在上传高峰期刷新频繁，只做短暂去抖.
const assetListCacheTTL = 10 * time.Second

type App struct {
	Engine *gin.Engine

	config  *configs.AppConfig
	manager *storage.Manager
	sched   *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// 初始化追踪
	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	// 请求体校验规则（blurhash / objectid）注册到 gin 的 binding 引擎
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := rule.RegisterMediaRulesWith(v); err != nil {
			fmt.Printf("Error registering validation rules: %v\n", err)
			os.Exit(1)
		}
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 定时任务：计数器对账、过期相册扫描
	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		// zip 归档已是压缩数据，跳过二次压缩
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`.*/archive$`})),
		middleware.GinLoggerMiddleware(),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.OrganizerAuthMiddleware(),
	)

	api := engine.Group("/api/v1")

	// 资产列表读缓存（KV 可用时启用），写操作不经过缓存
	if kvClient := manager.GetKVClient(); kvClient != nil {
		cacheCfg := middleware.DefaultCacheConfig(appcache.NewCache(kvClient))
		cacheCfg.TTL = assetListCacheTTL
		cacheCfg.Skipper = func(c *gin.Context) bool {
			return !strings.HasSuffix(c.Request.URL.Path, "/assets")
		}
		api.Use(middleware.CacheMiddleware(cacheCfg))
	}

	router.RegisterGalleryRoutes(api)
	router.RegisterHealthCheckRoute(api)
	router.RegisterSchedulerRoutes(api)
	router.RegisterSwaggerRoute(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine:  engine,
		config:  config,
		manager: manager,
		sched:   sched,
	}
}

func (a *App) Run() error {
	defer a.Close()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Close 释放调度器与存储连接.
func (a *App) Close() {
	if a.sched != nil {
		if err := a.sched.Shutdown(); err != nil {
			log.Logger().Warn().Err(err).Msg("scheduler shutdown failed")
		}
	}

	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			log.Logger().Warn().Err(err).Msg("storage close failed")
		}
	}
}
