package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// ErrPeriodNotSupported 统计周期不受支持
var ErrPeriodNotSupported = errors.New("不支持的统计周期")

// ErrNoData 所选窗口内没有任何记录
var ErrNoData = errors.New("所选周期内没有数据")

// Window 闭区间日期窗口，端点都是去时间部分的 UTC 日期
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains 判断某个日期（已去时间部分）是否落在窗口内
func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days 窗口天数（闭区间）
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Previous 紧邻本窗口之前的等长窗口，与本窗口无重叠
func (w Window) Previous() Window {
	prevEnd := w.Start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(w.Days() - 1))
	return Window{Start: prevStart, End: prevEnd}
}

// anchorDate 表内最大日期（去时间部分），作为窗口计算的"今天"
func anchorDate(records []model.SalesRecord) (time.Time, bool) {
	var anchor time.Time
	found := false
	for _, r := range records {
		day := r.Day()
		if !found || day.After(anchor) {
			anchor = day
			found = true
		}
	}
	return anchor, found
}

// PeriodBounds 按周期关键字计算分析窗口，锚定在表内最大日期
// 只接受 today / week，其余周期（包括 month / all）在此层被拒绝
func PeriodBounds(records []model.SalesRecord, period string) (Window, error) {
	anchor, ok := anchorDate(records)
	if !ok {
		return Window{}, ErrNoData
	}

	switch period {
	case "today":
		return Window{Start: anchor, End: anchor}, nil
	case "week":
		return Window{Start: anchor.AddDate(0, 0, -6), End: anchor}, nil
	default:
		return Window{}, fmt.Errorf("%w: %s", ErrPeriodNotSupported, period)
	}
}

// CustomBounds 自定义日期范围窗口，结束日期超出锚点时截断到锚点
func CustomBounds(records []model.SalesRecord, start, end time.Time) (Window, error) {
	anchor, ok := anchorDate(records)
	if !ok {
		return Window{}, ErrNoData
	}

	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return Window{}, fmt.Errorf("%w: 自定义周期的开始日期晚于结束日期", ErrPeriodNotSupported)
	}
	if end.After(anchor) {
		end = anchor
	}
	return Window{Start: start, End: end}, nil
}

// SplitWindows 把记录按日期归入当前窗口和对比窗口
func SplitWindows(records []model.SalesRecord, w Window) (curr, prev []model.SalesRecord) {
	prevWindow := w.Previous()
	for _, r := range records {
		day := r.Day()
		if w.Contains(day) {
			curr = append(curr, r)
		} else if prevWindow.Contains(day) {
			prev = append(prev, r)
		}
	}
	return curr, prev
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
