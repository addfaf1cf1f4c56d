// 包 render：把投影路径、匹配结果、交互状态组合成可绘制的场景
package render

import (
	"fmt"

	"partner-map/internal/geo"
	"partner-map/internal/interaction"
	"partner-map/internal/match"
	"partner-map/internal/metrics"
	"partner-map/internal/partners"
	"partner-map/internal/tier"
)

// Region：一个要素在本轮渲染中的解析结果
type Region struct {
	geo.ProjectedPath
	Province partners.Province
	Matched  bool
	Rule     match.Rule
	Tier     tier.Tier
}

// Count：匹配到的合作伙伴数量，未匹配为 0
func (r Region) Count() int {
	if !r.Matched {
		return 0
	}
	return len(r.Province.Partners)
}

// DisplayName：匹配时用业务名，否则用几何名
func (r Region) DisplayName() string {
	if r.Matched && r.Province.Name != "" {
		return r.Province.Name
	}
	return r.RegionName
}

// 文档注释：逐要素解析业务记录与档位
// 约束：records 在本轮内只读；结果与 paths 下标一一对应。
func Resolve(paths []geo.ProjectedPath, records []partners.Province) []Region {
	out := make([]Region, len(paths))
	for i, p := range paths {
		prov, rule := match.Resolve(p.RegionID, p.RegionName, p.Feature, records)
		metrics.MatchesTotal.WithLabelValues(rule.String()).Inc()
		r := Region{ProjectedPath: p, Province: prov, Matched: rule != match.RuleNone, Rule: rule}
		r.Tier = tier.For(r.Count())
		out[i] = r
	}
	return out
}

// Shape：可绘制的省份
type Shape struct {
	RegionID string
	Name     string
	Path     string
	Fill     string
	Tier     tier.Tier
	Count    int
}

// Tooltip：悬停提示框
type Tooltip struct {
	Text string
	At   interaction.Point
}

// DetailRow：详情面板中的一个合作伙伴
type DetailRow struct {
	Name        string
	Address     string
	Maintenance string
}

// Detail：选中省份后的覆盖面板
type Detail struct {
	Title string
	Rows  []DetailRow
}

// Scene：一次渲染的全部可见内容
type Scene struct {
	Shapes  []Shape
	Tooltip *Tooltip
	Legend  []tier.LegendEntry
	Detail  *Detail
	Loading bool
}

// DefaultTooltipOffset：提示框相对指针的偏移（SVG 像素）
var DefaultTooltipOffset = interaction.Point{X: 20, Y: -40}

// Input：组合所需的全部输入
type Input struct {
	Regions       []Region
	State         interaction.State
	Loading       bool // 调用方的外部加载标志
	GeoLoading    bool // 几何尚未就绪
	TooltipOffset interaction.Point
}

// 文档注释：组合场景
// 背景：加载中两种标志任一为真即显示加载层；提示框仅在悬停 Active 时出现，文本为“名称: N partners”。
// 约束：提示框对应第一个编码等于悬停编码的要素；找不到时不显示。
func Compose(in Input) Scene {
	sc := Scene{
		Legend:  tier.Legend(),
		Loading: in.Loading || in.GeoLoading,
	}
	sc.Shapes = make([]Shape, 0, len(in.Regions))
	for _, r := range in.Regions {
		sc.Shapes = append(sc.Shapes, Shape{
			RegionID: r.RegionID,
			Name:     r.DisplayName(),
			Path:     r.Path,
			Fill:     r.Tier.Fill(),
			Tier:     r.Tier,
			Count:    r.Count(),
		})
	}
	if h := in.State.Hover; h.Phase == interaction.Active {
		if r, ok := FindRegion(in.Regions, h.RegionID); ok {
			sc.Tooltip = &Tooltip{
				Text: TooltipText(r),
				At:   interaction.Point{X: h.Pos.X + in.TooltipOffset.X, Y: h.Pos.Y + in.TooltipOffset.Y},
			}
		}
	}
	if sel := in.State.Selected; sel != nil {
		sc.Detail = DetailFor(*sel)
	}
	return sc
}

// FindRegion：按编码找第一个要素
func FindRegion(regions []Region, id string) (Region, bool) {
	if id == "" {
		return Region{}, false
	}
	for _, r := range regions {
		if r.RegionID == id {
			return r, true
		}
	}
	return Region{}, false
}

// TooltipText：提示框文本
func TooltipText(r Region) string {
	return fmt.Sprintf("%s: %d partners", r.DisplayName(), r.Count())
}

// DetailFor：详情面板内容，合作伙伴保持原始顺序
func DetailFor(p partners.Province) *Detail {
	d := &Detail{Title: "Partners in " + p.Name}
	for _, pt := range p.Partners {
		d.Rows = append(d.Rows, DetailRow{
			Name:        pt.Name,
			Address:     pt.Address,
			Maintenance: fmt.Sprintf("Maintenance visits: %d", pt.Maintenance),
		})
	}
	return d
}
