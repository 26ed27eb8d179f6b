package analyzer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// rec 构造测试记录，date 为 YYYY-MM-DD
func rec(t *testing.T, date, sku, title string, qty int64, revenue, commissionPct string) model.SalesRecord {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", date, err)
	}
	return model.SalesRecord{
		Date:          day,
		SKU:           sku,
		Title:         title,
		Platform:      "Unknown",
		Qty:           qty,
		Revenue:       decimal.RequireFromString(revenue),
		CommissionPct: decimal.RequireFromString(commissionPct),
	}
}

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", date, err)
	}
	return d
}
