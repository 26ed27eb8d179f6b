package analyzer

import (
	"github.com/shopspring/decimal"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// PlatformStats 按销售平台汇总窗口记录
// revenue_pct 为占窗口销售额合计的百分比（1 位小数），合计为 0 时记 0
func PlatformStats(records []model.SalesRecord) map[string]model.PlatformStat {
	type agg struct {
		revenue decimal.Decimal
		orders  int64
	}

	groups := make(map[string]*agg)
	total := decimal.Zero
	for _, r := range records {
		g, ok := groups[r.Platform]
		if !ok {
			g = &agg{revenue: decimal.Zero}
			groups[r.Platform] = g
		}
		g.revenue = g.revenue.Add(r.Revenue)
		g.orders += r.Qty
		total = total.Add(r.Revenue)
	}

	hundred := decimal.NewFromInt(100)
	stats := make(map[string]model.PlatformStat, len(groups))
	for platform, g := range groups {
		pct := 0.0
		if total.IsPositive() {
			pct = round1(g.revenue.Div(total).Mul(hundred))
		}
		stats[platform] = model.PlatformStat{
			Revenue:    round2(g.revenue),
			Orders:     g.orders,
			RevenuePct: pct,
		}
	}
	return stats
}
