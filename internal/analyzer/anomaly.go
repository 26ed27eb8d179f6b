package analyzer

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// dailyPoint 单日销售额
type dailyPoint struct {
	day     time.Time
	revenue decimal.Decimal
}

// dailyRevenue 按日汇总销售额，只包含有记录的日期，按日期升序
func dailyRevenue(records []model.SalesRecord) []dailyPoint {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, r := range records {
		day := r.Day()
		byDay[day] = byDay[day].Add(r.Revenue)
	}

	points := make([]dailyPoint, 0, len(byDay))
	for day, revenue := range byDay {
		points = append(points, dailyPoint{day: day, revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].day.Before(points[j].day)
	})
	return points
}

// DetectAnomalies 检测日销售额突变
// 相邻两日变化幅度超过 threshold（0.3 = 30%）记为 spike 或 drop，
// 前一日为 0 时跳过（无法计算变化率）
func DetectAnomalies(records []model.SalesRecord, threshold float64) []model.Anomaly {
	daily := dailyRevenue(records)
	if len(daily) < 2 {
		return nil
	}

	limit := decimal.NewFromFloat(threshold).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)

	var anomalies []model.Anomaly
	for i := 1; i < len(daily); i++ {
		prev := daily[i-1].revenue
		if prev.IsZero() {
			continue
		}
		change := daily[i].revenue.Sub(prev).Div(prev).Mul(hundred)
		if change.Abs().Cmp(limit) <= 0 {
			continue
		}

		kind := "spike"
		if change.IsNegative() {
			kind = "drop"
		}
		anomalies = append(anomalies, model.Anomaly{
			Date:      daily[i].day.Format("2006-01-02"),
			Type:      kind,
			ChangePct: round1(change),
			Value:     round2(daily[i].revenue),
		})
	}
	return anomalies
}
