package analyzer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shokhzod-25/Dashly/internal/chart"
	"github.com/Shokhzod-25/Dashly/internal/ingest"
	"github.com/Shokhzod-25/Dashly/internal/model"
)

// Options 分析参数，全部由调用方显式传入，核心不读任何全局状态
type Options struct {
	DefaultCommission float64 // 佣金比例默认值
	AnomalyThreshold  float64 // 日销售额突变阈值（0.3 = 30%）
	TopN              int     // 热销榜条目数
}

// Analyzer 销售窗口分析器
// 无状态、无副作用，同一个实例可以被并发请求安全复用
type Analyzer struct {
	opts     Options
	renderer chart.Renderer
}

// New 创建分析器
func New(opts Options, renderer chart.Renderer) *Analyzer {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.AnomalyThreshold <= 0 {
		opts.AnomalyThreshold = 0.3
	}
	return &Analyzer{opts: opts, renderer: renderer}
}

// Analyze 解析表格字节并在周期窗口（today / week）上计算完整报告
func (a *Analyzer) Analyze(content []byte, filename, period string) (*model.Report, error) {
	records, err := ingest.Parse(content, filename, a.opts.DefaultCommission)
	if err != nil {
		return nil, err
	}

	w, err := PeriodBounds(records, period)
	if err != nil {
		return nil, err
	}
	return a.analyze(records, filename, period, w)
}

// AnalyzeRange 在自定义日期范围上计算完整报告
func (a *Analyzer) AnalyzeRange(content []byte, filename string, start, end time.Time) (*model.Report, error) {
	records, err := ingest.Parse(content, filename, a.opts.DefaultCommission)
	if err != nil {
		return nil, err
	}

	w, err := CustomBounds(records, start, end)
	if err != nil {
		return nil, err
	}
	return a.analyze(records, filename, "custom", w)
}

func (a *Analyzer) analyze(records []model.SalesRecord, filename, period string, w Window) (*model.Report, error) {
	curr, prev := SplitWindows(records, w)
	if len(curr) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, period)
	}

	metrics := CalcMetrics(curr)
	var prevMetrics *model.Metrics
	if len(prev) > 0 {
		m := CalcMetrics(prev)
		prevMetrics = &m
	}
	ApplyComparison(&metrics, prevMetrics)

	topCurr := TopEntries(curr, a.opts.TopN)
	var topPrev []model.TopEntry
	if len(prev) > 0 {
		topPrev = TopEntries(prev, a.opts.TopN)
	}

	anomalies := DetectAnomalies(curr, a.opts.AnomalyThreshold)
	if anomalies == nil {
		// JSON 里固定输出 []，不输出 null
		anomalies = []model.Anomaly{}
	}
	platforms := PlatformStats(curr)
	tips := GenerateTips(metrics, prevMetrics, topCurr, topPrev)

	png, err := a.renderer.Render(chart.BuildDailySeries(curr))
	if err != nil {
		return nil, fmt.Errorf("渲染图表失败: %w", err)
	}

	return &model.Report{
		Metrics:       metrics,
		Top5:          topCurr,
		Tips:          tips,
		Anomalies:     anomalies,
		PlatformStats: platforms,
		ChartPNG:      png,
		Meta: model.Meta{
			ReportID:      uuid.NewString(),
			Source:        ingest.Source(filename),
			Mode:          "manual",
			Period:        period,
			PeriodStart:   w.Start.Format("2006-01-02"),
			PeriodEnd:     w.End.Format("2006-01-02"),
			RowsProcessed: len(records),
			HasAnomalies:  len(anomalies) > 0,
		},
	}, nil
}
