package analyzer

import (
	"github.com/shopspring/decimal"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// CalcMetrics 汇总窗口指标，金额一律保留 2 位小数
func CalcMetrics(records []model.SalesRecord) model.Metrics {
	revenue := decimal.Zero
	commission := decimal.Zero
	var orders int64

	for _, r := range records {
		revenue = revenue.Add(r.Revenue)
		commission = commission.Add(r.Revenue.Mul(r.CommissionPct))
		orders += r.Qty
	}

	m := model.Metrics{
		Orders:     orders,
		Revenue:    round2(revenue),
		Commission: round2(commission),
		Profit:     round2(revenue.Sub(commission)),
	}
	// 订单量为 0 时客单价保持 0
	if orders > 0 {
		m.AvgCheck = round2(revenue.Div(decimal.NewFromInt(orders)))
	}
	return m
}

// ApplyComparison 基于对比窗口指标填充环比字段，没有对比数据时保持 null
func ApplyComparison(curr *model.Metrics, prev *model.Metrics) {
	if prev == nil {
		curr.RevenueChangePct = nil
		curr.OrdersChangePct = nil
		curr.AvgCheckChangePct = nil
		return
	}
	curr.RevenueChangePct = PctChange(curr.Revenue, prev.Revenue)
	curr.OrdersChangePct = PctChange(float64(curr.Orders), float64(prev.Orders))
	curr.AvgCheckChangePct = PctChange(curr.AvgCheck, prev.AvgCheck)
}

// PctChange 环比百分比 (curr-prev)/prev*100，保留 2 位小数
// 基数为 0 时返回 nil，避免除零被当成"无限增长"
func PctChange(curr, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	c := decimal.NewFromFloat(curr)
	p := decimal.NewFromFloat(prev)
	v := round2(c.Sub(p).Div(p).Mul(decimal.NewFromInt(100)))
	return &v
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func round1(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}
