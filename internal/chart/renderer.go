package chart

import (
	"bytes"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// Point 单日销售额
type Point struct {
	Day     time.Time
	Revenue float64
}

// Renderer 图表渲染器：输入按日序列，输出编码后的图片字节
// 核心逻辑只依赖这个接口，测试时可以替换掉真实渲染后端
type Renderer interface {
	Render(points []Point) ([]byte, error)
}

// BuildDailySeries 构造窗口内 min..max 的连续按日序列，缺失日补 0
func BuildDailySeries(records []model.SalesRecord) []Point {
	if len(records) == 0 {
		return nil
	}

	byDay := make(map[time.Time]decimal.Decimal)
	var minDay, maxDay time.Time
	for i, r := range records {
		day := r.Day()
		byDay[day] = byDay[day].Add(r.Revenue)
		if i == 0 || day.Before(minDay) {
			minDay = day
		}
		if i == 0 || day.After(maxDay) {
			maxDay = day
		}
	}

	var points []Point
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		revenue, _ := byDay[day].Round(2).Float64()
		points = append(points, Point{Day: day, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })
	return points
}

// LineRenderer go-chart 折线图实现，输出 PNG
type LineRenderer struct {
	Width  int
	Height int
}

// NewLineRenderer 创建折线图渲染器
func NewLineRenderer(width, height int) *LineRenderer {
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 512
	}
	return &LineRenderer{Width: width, Height: height}
}

// Render 渲染日销售额折线图
func (r *LineRenderer) Render(points []Point) ([]byte, error) {
	if len(points) == 0 {
		return nil, errors.New("空序列无法渲染")
	}

	xs := make([]time.Time, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.Day)
		ys = append(ys, p.Revenue)
	}
	// go-chart 的 X 轴至少需要两个值，单日序列补一个次日同值点
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	line := drawing.ColorFromHex("0056b3")
	ch := gochart.Chart{
		Title:  "Revenue",
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "Revenue",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: line,
					StrokeWidth: 2.5,
					FillColor:   line.WithAlpha(32),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
