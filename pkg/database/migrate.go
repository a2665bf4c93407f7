package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"schedopt/config"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations 执行数据库迁移
// 表结构由外部维护，仅在 db.auto_migrate 开启时用于初始化空库
func RunMigrations(db *sql.DB, driverName string, logger *zap.Logger) error {
	dir := "migrations/" + driverName
	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	var driver database.Driver
	switch driverName {
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	}
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", version))
	} else {
		logger.Info("数据库迁移完成", zap.Uint("version", version))
	}

	return nil
}
