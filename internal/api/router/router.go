package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"schedopt/config"
	"schedopt/internal/api/handler"
	"schedopt/internal/api/middleware"
	"schedopt/internal/web"
	"schedopt/pkg/jwt"
	"schedopt/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// jwtMgr 为 nil 时不启用管理员认证；rdb 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("加载页面模板失败: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── 页面 ──
	r.GET("/", h.Web.Index)

	// ── API ──
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}

	api := r.Group("/api")
	{
		api.GET("/timetable", h.Timetable.GetDays)
		api.GET("/timeslots", h.Timetable.GetTimeSlots)
		api.GET("/final-assignments", h.Timetable.GetAssignments)
		api.GET("/grid", h.Timetable.GetGrid)
		api.GET("/conflicts", h.Timetable.GetConflicts)
		api.GET("/export/timetable", h.Export.ExportTimetable)

		api.POST("/update",
			middleware.RateLimit(limiter, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window),
			middleware.AdminAuth(jwtMgr),
			h.Timetable.UpdateAssignment,
		)
	}

	return r, nil
}
