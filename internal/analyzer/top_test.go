package analyzer

import (
	"math"
	"testing"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

func TestTopEntries_GroupAndSort(t *testing.T) {
	t.Parallel()

	records := []model.SalesRecord{
		rec(t, "2025-10-20", "A", "Widget", 2, "20", "0.15"),
		rec(t, "2025-10-19", "A", "Widget", 3, "30", "0.15"),
		rec(t, "2025-10-20", "B", "Gadget", 4, "10", "0.15"),
		rec(t, "2025-10-20", "C", "Gizmo", 1, "40", "0.15"),
	}
	entries := TopEntries(records, 5)

	if len(entries) != 3 {
		t.Fatalf("expected 3 grouped entries, got %d", len(entries))
	}
	// A 合计 qty=5 排第一，B qty=4 第二，C qty=1 第三
	if entries[0].SKU != "A" || entries[0].Qty != 5 || entries[0].Revenue != 50 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].SKU != "B" || entries[2].SKU != "C" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	// 份额按总销售额 100 计算
	if entries[0].RevenuePct != 50 || entries[1].RevenuePct != 10 || entries[2].RevenuePct != 40 {
		t.Fatalf("unexpected revenue_pct: %+v", entries)
	}
}

func TestTopEntries_CapsAtN(t *testing.T) {
	t.Parallel()

	var records []model.SalesRecord
	skus := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, sku := range skus {
		records = append(records, rec(t, "2025-10-20", sku, sku, int64(i+1), "10", "0.15"))
	}
	entries := TopEntries(records, 5)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Qty > entries[i-1].Qty {
			t.Fatalf("entries not sorted by qty desc: %+v", entries)
		}
	}
	if entries[0].SKU != "G" {
		t.Fatalf("highest qty should come first, got %+v", entries[0])
	}
}

func TestTopEntries_PctSumsToHundred(t *testing.T) {
	t.Parallel()

	records := []model.SalesRecord{
		rec(t, "2025-10-20", "A", "a", 1, "33.33", "0.15"),
		rec(t, "2025-10-20", "B", "b", 1, "33.33", "0.15"),
		rec(t, "2025-10-20", "C", "c", 1, "33.34", "0.15"),
	}
	// 不截断时全部分组份额合计应为 100（容许舍入误差）
	entries := TopEntries(records, 0)
	sum := 0.0
	for _, e := range entries {
		sum += e.RevenuePct
	}
	if math.Abs(sum-100) > 0.02 {
		t.Fatalf("revenue_pct should sum to 100, got %v", sum)
	}
}

func TestTopEntries_ZeroTotalRevenue(t *testing.T) {
	t.Parallel()

	records := []model.SalesRecord{
		rec(t, "2025-10-20", "A", "a", 2, "0", "0.15"),
		rec(t, "2025-10-20", "B", "b", 1, "0", "0.15"),
	}
	entries := TopEntries(records, 5)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.RevenuePct != 0 {
			t.Fatalf("zero revenue window must not divide by zero: %+v", e)
		}
	}
}

func TestTopEntries_DeterministicTieBreak(t *testing.T) {
	t.Parallel()

	records := []model.SalesRecord{
		rec(t, "2025-10-20", "B", "b", 2, "10", "0.15"),
		rec(t, "2025-10-20", "A", "a", 2, "10", "0.15"),
		rec(t, "2025-10-20", "C", "c", 2, "20", "0.15"),
	}
	entries := TopEntries(records, 5)
	// 同销量：销售额高者在前，再按 sku 升序
	if entries[0].SKU != "C" || entries[1].SKU != "A" || entries[2].SKU != "B" {
		t.Fatalf("unexpected tie-break order: %+v", entries)
	}
}

func TestTopEntries_Empty(t *testing.T) {
	t.Parallel()

	if entries := TopEntries(nil, 5); len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}
