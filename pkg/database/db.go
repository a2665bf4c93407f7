package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schedopt/config"
)

// NewDB 初始化数据库连接池
// 启动阶段数据库可能尚未就绪（容器编排），按指数退避重试直到 cfg.ConnectTimeout
func NewDB(ctx context.Context, cfg *config.DatabaseConfig, logLevel string, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(logLevel)),
	}

	var retry backoff.BackOff = &backoff.StopBackOff{}
	if cfg.ConnectTimeout > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.MaxElapsedTime = cfg.ConnectTimeout
		retry = exp
	}

	var db *gorm.DB
	attempt := 0
	op := func() error {
		attempt++
		var err error
		db, err = open(cfg, gormCfg)
		if err != nil {
			logger.Warn("数据库连接失败，准备重试",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(retry, ctx)); err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	logger.Info("数据库连接成功",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Name),
		zap.Int("attempts", attempt),
	)

	return db, nil
}

func open(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		dialector = mysql.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	// 连接池配置（默认 25/10）
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	return db, nil
}

// gormLogLevel 应用日志级别 → GORM 日志级别（debug 时输出 SQL）
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "info":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
