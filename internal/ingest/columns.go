package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// ErrMissingColumn 缺少必需列，错误信息带出第一个缺失的列名
var ErrMissingColumn = errors.New("缺少必需列")

// ErrBadDate 日期无法解析，整个文件被拒绝
var ErrBadDate = errors.New("日期格式无法解析，请检查数据格式")

// columnAliases 目标列 -> 可接受的源列名（按优先级）
var columnAliases = map[string][]string{
	"date":           {"date", "order_date", "dt"},
	"sku":            {"sku", "product_sku", "article"},
	"title":          {"title", "product_name", "name"},
	"qty":            {"qty", "quantity", "count", "amount"},
	"price":          {"price", "unit_price"},
	"revenue":        {"revenue", "total", "sum"},
	"commission_pct": {"commission_pct", "commission", "commission_rate"},
	"platform":       {"platform", "marketplace", "source"},
}

// requiredColumns 必需列检查顺序，报错时带出第一个缺失的
var requiredColumns = []string{"date", "sku", "title", "qty", "revenue"}

// platformNames 平台名称归一化
var platformNames = map[string]string{
	"wb":          "Wildberries",
	"wildberries": "Wildberries",
	"ozon":        "Ozon",
}

// dateLayouts 日期解析允许的布局
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
}

// NormalizeColumnName 列名归一化：去空白 + 小写
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// columnIndex 目标列 -> 列下标
type columnIndex map[string]int

// mapColumns 按别名表把表头映射到目标列，每个目标列取第一个命中的别名
func mapColumns(header []string) columnIndex {
	normalized := make(map[string]int, len(header))
	for i, col := range header {
		name := NormalizeColumnName(col)
		if name == "" {
			continue
		}
		if _, ok := normalized[name]; !ok {
			normalized[name] = i
		}
	}

	index := columnIndex{}
	for target, candidates := range columnAliases {
		for _, c := range candidates {
			if i, ok := normalized[c]; ok {
				index[target] = i
				break
			}
		}
	}
	return index
}

// BuildRecords 把原始表格行归一化为销售记录
//
// 必需列为 date, sku, title, qty, revenue（经别名映射后），其中
// title/sku 可互相回填，revenue 可由 price*qty 推导；仍缺失则报
// ErrMissingColumn 并带出第一个缺失列。qty/revenue 非数字按 0 处理，
// commission_pct 缺失或无法解析时取 defaultCommission。
func BuildRecords(rows [][]string, defaultCommission float64) ([]model.SalesRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: date", ErrMissingColumn)
	}

	index := mapColumns(rows[0])

	// 缺列回填：只有 sku/title 其一时互相补位
	_, hasSKU := index["sku"]
	_, hasTitle := index["title"]
	if !hasTitle && hasSKU {
		index["title"] = index["sku"]
	}
	if !hasSKU && hasTitle {
		index["sku"] = index["title"]
	}

	_, hasRevenue := index["revenue"]
	priceIdx, hasPrice := index["price"]
	deriveRevenue := !hasRevenue && hasPrice

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			if col == "revenue" && deriveRevenue {
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	defPct := decimal.NewFromFloat(defaultCommission)
	commissionIdx, hasCommission := index["commission_pct"]
	platformIdx, hasPlatform := index["platform"]

	records := make([]model.SalesRecord, 0, len(rows)-1)
	for rowNum := 1; rowNum < len(rows); rowNum++ {
		row := rows[rowNum]
		if blankRow(row) {
			continue
		}

		dateCell := cellAt(row, index["date"])
		date, err := parseDate(dateCell)
		if err != nil {
			return nil, fmt.Errorf("%w（第 %d 行: %q）", ErrBadDate, rowNum+1, dateCell)
		}

		rec := model.SalesRecord{
			Date:  date,
			SKU:   strings.TrimSpace(cellAt(row, index["sku"])),
			Title: strings.TrimSpace(cellAt(row, index["title"])),
			Qty:   parseQty(cellAt(row, index["qty"])),
		}

		if deriveRevenue {
			price := parseMoney(cellAt(row, priceIdx))
			rec.Revenue = price.Mul(decimal.NewFromInt(rec.Qty))
		} else {
			rec.Revenue = parseMoney(cellAt(row, index["revenue"]))
		}

		rec.CommissionPct = defPct
		if hasCommission {
			if pct, ok := parseDecimal(cellAt(row, commissionIdx)); ok && !pct.IsNegative() {
				rec.CommissionPct = pct
			}
		}

		rec.Platform = "Unknown"
		if hasPlatform {
			rec.Platform = normalizePlatform(cellAt(row, platformIdx))
		}

		records = append(records, rec)
	}

	return records, nil
}

// cellAt 越界安全取值
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseQty 销量：非数字按 0，负数按 0
func parseQty(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	// "3.0" 这类浮点写法取整数部分
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int64(f)
	}
	return 0
}

// parseMoney 金额：非数字按 0，负数按 0
func parseMoney(s string) decimal.Decimal {
	d, ok := parseDecimal(s)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func normalizePlatform(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	if canonical, ok := platformNames[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// Parse 一步完成表格解析与归一化
func Parse(content []byte, filename string, defaultCommission float64) ([]model.SalesRecord, error) {
	rows, err := ReadTable(content, filename)
	if err != nil {
		return nil, err
	}
	return BuildRecords(rows, defaultCommission)
}
