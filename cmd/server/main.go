package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"schedopt/config"
	"schedopt/internal/api/handler"
	"schedopt/internal/api/router"
	"schedopt/internal/jobs"
	"schedopt/internal/repository"
	"schedopt/internal/service"
	"schedopt/pkg/database"
	"schedopt/pkg/jwt"
	applogger "schedopt/pkg/logger"
	"schedopt/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库（启动时按指数退避重试）
	db, err := database.NewDB(context.Background(), &cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}

	// 3.1 表结构由外部维护，仅在显式开启时执行迁移
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
	}

	// 4. 连接 Redis（可选：连接失败时降级为直接读库、不限流）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，缓存与限流不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. 管理员认证（可选）
	var jwtMgr *jwt.Manager
	if cfg.Auth.Enabled {
		jwtMgr = jwt.NewManager(&cfg.Auth)
		logger.Info("已启用管理员认证，POST /api/update 需要 Bearer Token")
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, rdb, logger)
	h := handler.NewHandler(svc, cfg.Auth.Enabled, logger)

	// 7. 初始化路由
	engine, err := router.Setup(cfg, h, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 8. 冲突巡检任务
	var audit *jobs.ConflictAudit
	if cfg.Audit.Enabled {
		audit = jobs.NewConflictAudit(svc.Audit, logger)
		if err := audit.Start(cfg.Audit.Schedule); err != nil {
			logger.Fatal("启动冲突巡检失败", zap.Error(err))
		}
	}

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if audit != nil {
		audit.Stop(ctx)
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
