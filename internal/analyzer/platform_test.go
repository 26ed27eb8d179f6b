package analyzer

import (
	"math"
	"testing"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

func TestPlatformStats(t *testing.T) {
	t.Parallel()

	wb := rec(t, "2025-10-20", "A", "a", 2, "300", "0.15")
	wb.Platform = "Wildberries"
	ozon := rec(t, "2025-10-20", "B", "b", 1, "100", "0.15")
	ozon.Platform = "Ozon"
	ozon2 := rec(t, "2025-10-19", "C", "c", 3, "100", "0.15")
	ozon2.Platform = "Ozon"

	stats := PlatformStats([]model.SalesRecord{wb, ozon, ozon2})
	if len(stats) != 2 {
		t.Fatalf("expected 2 platforms, got %+v", stats)
	}

	w := stats["Wildberries"]
	if w.Revenue != 300 || w.Orders != 2 || w.RevenuePct != 60 {
		t.Fatalf("unexpected Wildberries stats: %+v", w)
	}
	o := stats["Ozon"]
	if o.Revenue != 200 || o.Orders != 4 || o.RevenuePct != 40 {
		t.Fatalf("unexpected Ozon stats: %+v", o)
	}

	sum := 0.0
	for _, s := range stats {
		sum += s.RevenuePct
	}
	if math.Abs(sum-100) > 0.2 {
		t.Fatalf("platform shares should sum to 100, got %v", sum)
	}
}

func TestPlatformStats_ZeroTotal(t *testing.T) {
	t.Parallel()

	r := rec(t, "2025-10-20", "A", "a", 1, "0", "0.15")
	stats := PlatformStats([]model.SalesRecord{r})
	if stats["Unknown"].RevenuePct != 0 {
		t.Fatalf("zero total must not divide by zero: %+v", stats)
	}
}

func TestPlatformStats_Empty(t *testing.T) {
	t.Parallel()

	if stats := PlatformStats(nil); len(stats) != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}
