package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord 一行销售明细（解析归一化后）
type SalesRecord struct {
	Date          time.Time       // 订单日期
	SKU           string          // 商品编码
	Title         string          // 商品名称
	Platform      string          // 销售平台（归一化名称，未知为 Unknown）
	Qty           int64           // 销量
	Revenue       decimal.Decimal // 销售额
	CommissionPct decimal.Decimal // 平台佣金比例（缺失时取配置默认值）
}

// Day 返回去掉时间部分的日期（UTC），用于窗口过滤与按日汇总
func (r SalesRecord) Day() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// Metrics 窗口指标汇总
type Metrics struct {
	Revenue    float64 `json:"revenue"`    // 销售额（2位小数）
	Orders     int64   `json:"orders"`     // 订单量（销量合计）
	AvgCheck   float64 `json:"avg_check"`  // 客单价，订单量为 0 时为 0
	Commission float64 `json:"commission"` // 佣金合计
	Profit     float64 `json:"profit"`     // 利润 = 销售额 - 佣金

	// 环比变化（对比上一等长窗口），无对比数据或基数为 0 时为 null
	RevenueChangePct  *float64 `json:"revenue_change_pct"`
	OrdersChangePct   *float64 `json:"orders_change_pct"`
	AvgCheckChangePct *float64 `json:"avg_check_change_pct"`
}

// TopEntry 窗口内按 (sku,title) 汇总的热销条目
type TopEntry struct {
	SKU        string  `json:"sku"`
	Title      string  `json:"title"`
	Qty        int64   `json:"qty"`
	Revenue    float64 `json:"revenue"`
	RevenuePct float64 `json:"revenue_pct"` // 占窗口总销售额的百分比
}

// Anomaly 日销售额突变点
type Anomaly struct {
	Date      string  `json:"date"`       // YYYY-MM-DD
	Type      string  `json:"type"`       // spike / drop
	ChangePct float64 `json:"change_pct"` // 相对前一日的变化（1位小数）
	Value     float64 `json:"value"`      // 当日销售额
}

// PlatformStat 单个平台的窗口统计
type PlatformStat struct {
	Revenue    float64 `json:"revenue"`
	Orders     int64   `json:"orders"`
	RevenuePct float64 `json:"revenue_pct"` // 占窗口总销售额的百分比（1位小数）
}

// Meta 报告元信息
type Meta struct {
	ReportID      string `json:"report_id"`
	Source        string `json:"source"` // CSV / XLSX
	Mode          string `json:"mode"`   // manual
	Period        string `json:"period"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	RowsProcessed int    `json:"rows_processed"`
	HasAnomalies  bool   `json:"has_anomalies"`
}

// Report 一次分析调用的完整结果，请求级生命周期，不做任何持久化
type Report struct {
	Metrics       Metrics                 `json:"metrics"`
	Top5          []TopEntry              `json:"top5"`
	Tips          []string                `json:"tips"`
	Anomalies     []Anomaly               `json:"anomalies"`
	PlatformStats map[string]PlatformStat `json:"platform_stats"`
	ChartPNG      []byte                  `json:"-"`
	Meta          Meta                    `json:"meta"`
}
