package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitfantasy/weldshop/internal/config"
	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/events"
	"github.com/bitfantasy/weldshop/internal/handler"
	"github.com/bitfantasy/weldshop/internal/middleware"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置，数据库连接配置缺失时直接退出
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting weldshop service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化依赖
	hub := events.NewHub()
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, hub, cfg)
	handlers := handler.NewHandlers(services, cfg, hub)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/events"})))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// 当前用户
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 变更事件推送
			authorized.GET("/events", h.Events.Stream)

			// 员工工时（所有登录用户可用）
			timesheets := authorized.Group("/timesheets")
			{
				timesheets.GET("", h.Timesheet.List)
				timesheets.GET("/active", h.Timesheet.Active)
				timesheets.POST("/clock-in", h.Timesheet.ClockIn)
				timesheets.POST("/clock-out", h.Timesheet.ClockOut)
				timesheets.POST("/:id/retry", h.Timesheet.Retry)
				timesheets.GET("/:id/materials", h.Timesheet.Usage)
				timesheets.POST("/work-orders", h.Timesheet.CreateWorkOrder)
			}

			// 员工开单需要读工单列表与库存物料
			authorized.GET("/projects", h.Project.List)
			authorized.GET("/projects/:id", h.Project.Get)
			authorized.GET("/inventory", h.Inventory.List)
			authorized.GET("/inventory/:id", h.Inventory.Get)

			// 管理端接口
			managers := authorized.Group("")
			managers.Use(middleware.RequireRole("manager"))
			{
				// 仪表盘
				managers.GET("/dashboard/stats", h.Dashboard.Stats)
				managers.GET("/dashboard/health", h.Dashboard.Health)

				// 客户管理
				customers := managers.Group("/customers")
				{
					customers.GET("", h.Customer.List)
					customers.POST("", h.Customer.Create)
					customers.GET("/:id", h.Customer.Get)
					customers.PUT("/:id", h.Customer.Update)
					customers.DELETE("/:id", h.Customer.Delete)
				}

				// 工单管理
				managers.POST("/projects", h.Project.Create)
				managers.PUT("/projects/:id", h.Project.Update)
				managers.DELETE("/projects/:id", h.Project.Delete)

				// 工单附件
				managers.POST("/projects/:id/attachments", h.Attachment.Upload)
				managers.GET("/projects/:id/attachments", h.Attachment.List)
				managers.GET("/projects/:id/attachments/:attachmentId", h.Attachment.Download)
				managers.DELETE("/projects/:id/attachments/:attachmentId", h.Attachment.Delete)

				// 库存管理
				managers.POST("/inventory", h.Inventory.Create)
				managers.PUT("/inventory/:id", h.Inventory.Update)
				managers.DELETE("/inventory/:id", h.Inventory.Delete)
				managers.GET("/inventory-low-stock", h.Inventory.LowStock)
				managers.GET("/inventory-export", h.Inventory.Export)

				// 报价管理
				quotes := managers.Group("/quotes")
				{
					quotes.GET("", h.Quote.List)
					quotes.POST("", h.Quote.Create)
					quotes.GET("/:id", h.Quote.Get)
					quotes.PUT("/:id", h.Quote.Update)
					quotes.DELETE("/:id", h.Quote.Delete)
				}

				// 发票管理
				invoices := managers.Group("/invoices")
				{
					invoices.GET("", h.Invoice.List)
					invoices.POST("", h.Invoice.Create)
					invoices.GET("/:id", h.Invoice.Get)
					invoices.PUT("/:id", h.Invoice.Update)
					invoices.DELETE("/:id", h.Invoice.Delete)
					invoices.POST("/:id/payments", h.Invoice.RecordPayment)
				}
			}
		}
	}
}
