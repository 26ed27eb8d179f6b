package analyzer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Shokhzod-25/Dashly/internal/model"
)

// revenueDropThreshold 销售额下降超过该幅度时触发建议（百分比）
const revenueDropThreshold = -15

// concentrationThreshold 单品销售额占比超过该值时触发备货建议（百分比）
const concentrationThreshold = 40

// GenerateTips 按固定顺序评估建议规则，每条规则最多产出一条建议
//
// 规则之间互相独立：
//  1. 有对比数据且销售额环比低于 -15%，提示销量下滑
//  2. 头部商品销售额占比超过 40%，提示集中度风险
//  3. 有对比数据且客单价下降、订单量上升，提示促销拉低客单价
//  4. 有上期热销榜且本期出现新面孔，提示第一个新晋商品（只提示一次）
//  5. 以上都没触发时，给出一条兜底的"保持稳定"建议
func GenerateTips(curr model.Metrics, prev *model.Metrics, topCurr, topPrev []model.TopEntry) []string {
	var tips []string

	if prev != nil && curr.RevenueChangePct != nil && *curr.RevenueChangePct < revenueDropThreshold {
		tips = append(tips, fmt.Sprintf("⚠️ 销售额下降了 %s%%，建议检查广告投放和商品曝光。",
			fmtPct(math.Abs(*curr.RevenueChangePct))))
	}

	if len(topCurr) > 0 && topCurr[0].RevenuePct > concentrationThreshold {
		tips = append(tips, fmt.Sprintf("📦 热销商品「%s」贡献了 %s%% 的销售额，注意备货，避免断货。",
			topCurr[0].Title, fmtPct(topCurr[0].RevenuePct)))
	}

	if prev != nil && curr.AvgCheck < prev.AvgCheck && curr.Orders > prev.Orders {
		tips = append(tips, "💰 订单量上升但客单价下降，可能是促销拉低了客单价，建议搭配关联商品。")
	}

	if len(topPrev) > 0 {
		prevSKUs := make(map[string]struct{}, len(topPrev))
		for _, e := range topPrev {
			prevSKUs[e.SKU] = struct{}{}
		}
		for _, e := range topCurr {
			if _, ok := prevSKUs[e.SKU]; !ok {
				tips = append(tips, fmt.Sprintf("🔥 新晋热销：%s。", e.Title))
				break
			}
		}
	}

	if len(tips) == 0 {
		tips = append(tips, "✅ 各项指标保持稳定，继续保持。")
	}
	return tips
}

// fmtPct 百分比数值去掉多余的尾随零
func fmtPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
