package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shokhzod-25/Dashly/internal/analyzer"
	"github.com/Shokhzod-25/Dashly/internal/api"
	"github.com/Shokhzod-25/Dashly/internal/chart"
	"github.com/Shokhzod-25/Dashly/internal/config"
)

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer := chart.NewLineRenderer(cfg.Chart.Width, cfg.Chart.Height)
	a := analyzer.New(analyzer.Options{
		DefaultCommission: cfg.Business.DefaultCommission,
		AnomalyThreshold:  cfg.Business.AnomalyThreshold,
		TopN:              cfg.Business.TopN,
	}, renderer)
	handler := api.NewHandler(a, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLog(logger))

	// CORS
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler.RegisterRoutes(router.Group("/"))

	return &Server{router: router, logger: logger}
}

// requestLog 请求日志中间件
func requestLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 返回 gin 引擎（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
