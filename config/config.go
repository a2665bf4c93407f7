package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int             `mapstructure:"port"`
	BodyLimit int64           `mapstructure:"body_limit"` // 请求体上限（字节）
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig 写接口限流配置
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DatabaseConfig 数据库配置（MySQL / PostgreSQL）
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	Timezone        string        `mapstructure:"timezone"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int           `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int           `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`    // 启动时重试连接的总时长
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN 按驱动生成连接字符串
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
		)
	}
	// MySQL：TIME 列按字符串读出，不做 time.Time 解析
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=false&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// AuthConfig 管理员 JWT 认证配置（默认关闭）
type AuthConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuditConfig 冲突巡检任务配置
type AuditConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron 表达式，如 "@every 10m"
}

// railwayEnv 部署平台注入的环境变量名 → 配置键
var railwayEnv = map[string]string{
	"db.host":     "MYSQLHOST",
	"db.port":     "MYSQLPORT",
	"db.user":     "MYSQLUSER",
	"db.password": "MYSQLPASSWORD",
	"db.name":     "MYSQLDATABASE",
	"server.port": "PORT",
}

// Load 从 .env、配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略，仅依赖系统环境变量
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"*"})
	v.SetDefault("server.rate_limit.requests", 30)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("db.driver", DriverMySQL)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.name", "schedopt_db")
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)  // 60分钟
	v.SetDefault("db.conn_max_idle_time", 30) // 30分钟
	v.SetDefault("db.connect_timeout", "30s")
	v.SetDefault("db.auto_migrate", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "10m")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.access_token_ttl", "12h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.schedule", "@every 10m")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("SCHEDOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range railwayEnv {
		// 带前缀的变量优先于平台变量
		if err := v.BindEnv(key, "SCHEDOPT_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Database.Driver != DriverMySQL && c.Database.Driver != DriverPostgres {
		return fmt.Errorf("配置校验失败: db.driver 仅支持 mysql 或 postgres，当前为 %q", c.Database.Driver)
	}
	if c.Auth.Enabled && len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: 启用认证时 auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.RateLimit.Requests < 0 {
		return fmt.Errorf("配置校验失败: server.rate_limit.requests 不能为负数")
	}
	return nil
}
