package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// ViewBox：与 Web 地图一致的可视区域（x, y, w, h）
var ViewBox = [4]float64{130, 80, 700, 400}

const (
	strokeColor = "#e5e7eb"
	textColor   = "#334155"
	dimColor    = "#64748b"
	charWidth   = 6.5
)

// 文档注释：场景 → 独立 SVG 文档
// 背景：离线导出与对比测试使用；绘制顺序为省份、提示框、图例、详情面板、加载层。
// 约束：详情面板与加载层都覆盖整个 viewBox；文本统一做 XML 转义。
func WriteSVG(w io.Writer, sc Scene) error {
	bw := bufio.NewWriter(w)
	x0, y0, vw, vh := ViewBox[0], ViewBox[1], ViewBox[2], ViewBox[3]
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" font-family="sans-serif">`+"\n", x0, y0, vw, vh)
	fmt.Fprintf(bw, `<rect x="%g" y="%g" width="%g" height="%g" fill="#ffffff"/>`+"\n", x0, y0, vw, vh)

	bw.WriteString(`<g class="regions">` + "\n")
	for _, s := range sc.Shapes {
		if s.Path == "" {
			continue
		}
		fmt.Fprintf(bw, `<path d="%s" fill="%s" stroke="%s" stroke-width="0.5" data-region="%s" data-tier="%s"><title>%s</title></path>`+"\n",
			s.Path, s.Fill, strokeColor, esc(s.RegionID), s.Tier, esc(s.Name))
	}
	bw.WriteString("</g>\n")

	if t := sc.Tooltip; t != nil {
		tw := float64(len([]rune(t.Text)))*charWidth + 24
		fmt.Fprintf(bw, `<g class="tooltip"><rect x="%g" y="%g" width="%g" height="28" rx="6" fill="#ffffff" stroke="%s"/>`, t.At.X, t.At.Y, tw, strokeColor)
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="12" fill="%s">%s</text></g>`+"\n", t.At.X+12, t.At.Y+18, textColor, esc(t.Text))
	}

	writeLegend(bw, sc, x0+vw, y0+vh)

	if d := sc.Detail; d != nil {
		writeDetail(bw, d, x0, y0, vw, vh)
	}

	if sc.Loading {
		fmt.Fprintf(bw, `<g class="loading"><rect x="%g" y="%g" width="%g" height="%g" fill="#ffffff" fill-opacity="0.8"/>`, x0, y0, vw, vh)
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="14" text-anchor="middle" fill="%s">Loading map data...</text></g>`+"\n", x0+vw/2, y0+vh/2, dimColor)
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// 图例固定在右下角
func writeLegend(bw *bufio.Writer, sc Scene, right, bottom float64) {
	if len(sc.Legend) == 0 {
		return
	}
	h := 28 + float64(len(sc.Legend))*18
	x, y := right-130, bottom-h-16
	fmt.Fprintf(bw, `<g class="legend"><rect x="%g" y="%g" width="114" height="%g" rx="8" fill="#ffffff" stroke="%s"/>`, x, y, h, strokeColor)
	fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="11" font-weight="600" fill="%s">Legend</text>`, x+12, y+18, textColor)
	for i, e := range sc.Legend {
		ry := y + 28 + float64(i)*18
		fmt.Fprintf(bw, `<rect x="%g" y="%g" width="12" height="12" rx="3" fill="%s" stroke="%s"/>`, x+12, ry, e.Tier.Fill(), e.Tier.Stroke())
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="11" fill="%s">%s</text>`, x+30, ry+10, dimColor, esc(e.Label))
	}
	bw.WriteString("</g>\n")
}

func writeDetail(bw *bufio.Writer, d *Detail, x0, y0, vw, vh float64) {
	fmt.Fprintf(bw, `<g class="detail"><rect x="%g" y="%g" width="%g" height="%g" fill="#ffffff" fill-opacity="0.95"/>`, x0, y0, vw, vh)
	fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="18" font-weight="600" fill="#0f172a">%s</text>`, x0+24, y0+36, esc(d.Title))
	fmt.Fprintf(bw, `<text class="close" x="%g" y="%g" font-size="18" text-anchor="end" fill="%s">×</text>`, x0+vw-24, y0+36, dimColor)
	y := y0 + 56
	for _, r := range d.Rows {
		fmt.Fprintf(bw, `<rect x="%g" y="%g" width="%g" height="64" rx="8" fill="none" stroke="%s"/>`, x0+24, y, vw-48, strokeColor)
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="13" font-weight="500" fill="#0f172a">%s</text>`, x0+40, y+20, esc(r.Name))
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="12" fill="%s">%s</text>`, x0+40, y+38, dimColor, esc(r.Address))
		fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="11" fill="%s">%s</text>`, x0+40, y+54, dimColor, esc(r.Maintenance))
		y += 72
	}
	bw.WriteString("</g>\n")
}

func esc(s string) string { return html.EscapeString(s) }
