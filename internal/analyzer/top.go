package analyzer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// TopEntries 按 (sku,title) 汇总窗口记录，按销量降序取前 n 条
// revenue_pct 按全部分组的销售额合计计算，合计为 0 时按 1 处理避免除零
func TopEntries(records []model.SalesRecord, n int) []model.TopEntry {
	type key struct {
		sku   string
		title string
	}
	type agg struct {
		qty     int64
		revenue decimal.Decimal
	}

	groups := make(map[key]*agg)
	for _, r := range records {
		k := key{sku: r.SKU, title: r.Title}
		g, ok := groups[k]
		if !ok {
			g = &agg{revenue: decimal.Zero}
			groups[k] = g
		}
		g.qty += r.Qty
		g.revenue = g.revenue.Add(r.Revenue)
	}

	total := decimal.Zero
	type grouped struct {
		key
		agg
	}
	all := make([]grouped, 0, len(groups))
	for k, g := range groups {
		total = total.Add(g.revenue)
		all = append(all, grouped{key: k, agg: *g})
	}
	if total.IsZero() {
		total = decimal.NewFromInt(1)
	}

	// 销量降序，平销量按销售额降序、sku 升序，保证输出确定
	sort.Slice(all, func(i, j int) bool {
		if all[i].qty != all[j].qty {
			return all[i].qty > all[j].qty
		}
		if cmp := all[i].revenue.Cmp(all[j].revenue); cmp != 0 {
			return cmp > 0
		}
		return all[i].sku < all[j].sku
	})

	if n > 0 && len(all) > n {
		all = all[:n]
	}

	entries := make([]model.TopEntry, 0, len(all))
	hundred := decimal.NewFromInt(100)
	for _, g := range all {
		entries = append(entries, model.TopEntry{
			SKU:        g.sku,
			Title:      g.title,
			Qty:        g.qty,
			Revenue:    round2(g.revenue),
			RevenuePct: round2(g.revenue.Div(total).Mul(hundred)),
		})
	}
	return entries
}
