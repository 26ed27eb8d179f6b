package api

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shokhzod-25/Dashly/internal/analyzer"
	"github.com/Shokhzod-25/Dashly/internal/ingest"
	"github.com/Shokhzod-25/Dashly/internal/model"
)

// AnalyzeResponse 分析响应
type AnalyzeResponse struct {
	Revenue           float64                       `json:"revenue"`
	Orders            int64                         `json:"orders"`
	AvgCheck          float64                       `json:"avg_check"`
	Commission        float64                       `json:"commission"`
	Profit            float64                       `json:"profit"`
	RevenueChangePct  *float64                      `json:"revenue_change_pct"`
	OrdersChangePct   *float64                      `json:"orders_change_pct"`
	AvgCheckChangePct *float64                      `json:"avg_check_change_pct"`
	Top5              []model.TopEntry              `json:"top5"`
	Tips              []string                      `json:"tips"`
	Anomalies         []model.Anomaly               `json:"anomalies"`
	PlatformStats     map[string]model.PlatformStat `json:"platform_stats"`
	ChartPNGBase64    string                        `json:"chart_png_base64"`
	Meta              model.Meta                    `json:"meta"`
}

// Analyze 分析上传的销售表格
// POST /analyze (multipart form: period, file)
func (h *Handler) Analyze(c *gin.Context) {
	period := strings.ToLower(strings.TrimSpace(c.PostForm("period")))
	switch period {
	case "today", "week":
		// 转交核心分析
	case "month", "all":
		c.JSON(http.StatusForbidden, gin.H{"error": "功能未解锁：month / all 为 PRO 版功能"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period 必须是 today、week、month、all 之一"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
		return
	}

	report, err := h.analyzer.Analyze(content, fileHeader.Filename, period)
	if err != nil {
		if isClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("分析失败",
			zap.String("filename", fileHeader.Filename),
			zap.String("period", period),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部错误"})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Revenue:           report.Metrics.Revenue,
		Orders:            report.Metrics.Orders,
		AvgCheck:          report.Metrics.AvgCheck,
		Commission:        report.Metrics.Commission,
		Profit:            report.Metrics.Profit,
		RevenueChangePct:  report.Metrics.RevenueChangePct,
		OrdersChangePct:   report.Metrics.OrdersChangePct,
		AvgCheckChangePct: report.Metrics.AvgCheckChangePct,
		Top5:              report.Top5,
		Tips:              report.Tips,
		Anomalies:         report.Anomalies,
		PlatformStats:     report.PlatformStats,
		ChartPNGBase64:    base64.StdEncoding.EncodeToString(report.ChartPNG),
		Meta:              report.Meta,
	})
}

// isClientError 核心抛出的解析 / 校验错误都映射为 400
func isClientError(err error) bool {
	return errors.Is(err, ingest.ErrUnsupportedFormat) ||
		errors.Is(err, ingest.ErrMissingColumn) ||
		errors.Is(err, ingest.ErrBadDate) ||
		errors.Is(err, analyzer.ErrPeriodNotSupported) ||
		errors.Is(err, analyzer.ErrNoData)
}
