package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shokhzod-25/Dashly/internal/analyzer"
)

// Handler API 处理器
type Handler struct {
	analyzer *analyzer.Analyzer
	logger   *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(a *analyzer.Analyzer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{analyzer: a, logger: logger}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
	router.POST("/analyze", h.Analyze)
}

// Health 健康检查
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
