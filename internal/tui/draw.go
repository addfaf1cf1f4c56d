package tui

import (
	"partner-map/internal/render"
	"partner-map/internal/tier"
)

// 省份填充；指针所在省份（即时，不等防抖）边界加深
func (m *Model) drawShapes(c *canvas, sc render.Scene) {
	w, h := m.vp.w, m.vp.h
	if len(m.grid) != w*h {
		return
	}
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			idx := m.grid[cy*w+cx]
			if idx < 0 || idx >= len(sc.Shapes) {
				continue
			}
			bg := sc.Shapes[idx].Fill
			switch {
			case !boundary(m.grid, w, h, cx, cy):
				c.set(cx, cy, ' ', "", bg)
			case idx == m.hoverIdx:
				c.set(cx, cy, '•', colorHover, bg)
			default:
				c.set(cx, cy, '·', colorStroke, bg)
			}
		}
	}
}

func drawLegend(c *canvas, entries []tier.LegendEntry) {
	width := 0
	for _, e := range entries {
		if n := len([]rune(e.Label)); n > width {
			width = n
		}
	}
	bw, bh := width+7, len(entries)+2
	x, y := c.w-bw-1, c.h-bh
	if x < 0 || y < 0 {
		return
	}
	c.box(x, y, bw, bh, colorBorder, colorPanel)
	for i, e := range entries {
		c.set(x+2, y+1+i, ' ', "", e.Tier.Fill())
		c.set(x+3, y+1+i, ' ', "", e.Tier.Fill())
		c.text(x+5, y+1+i, e.Label, colorText, colorPanel)
	}
}

func drawTooltip(c *canvas, t *render.Tooltip) {
	bw := len([]rune(t.Text)) + 4
	x, y := clamp(int(t.At.X), 0, c.w-bw), clamp(int(t.At.Y), 0, c.h-3)
	c.box(x, y, bw, 3, colorBorder, colorPanel)
	c.text(x+2, y+1, t.Text, colorInk, colorPanel)
}

// 文档注释：详情面板覆盖整个地图区域
// 约束：右上角 [x] 为关闭按钮（与 onCloseButton 的命中区一致）；内容超出高度时按 scroll 行偏移显示。
func drawDetail(c *canvas, d *render.Detail, scroll int) {
	c.box(0, 0, c.w, c.h, colorBorder, colorPanel)
	c.text(c.w-6, 0, " [x] ", colorDim, colorPanel)
	c.text(2, 1, d.Title, colorInk, colorPanel)

	var lines []line
	if len(d.Rows) == 0 {
		lines = append(lines, line{"No partners", colorDim})
	}
	for _, r := range d.Rows {
		lines = append(lines,
			line{r.Name, colorInk},
			line{r.Address, colorDim},
			line{r.Maintenance, colorText},
			line{"", ""},
		)
	}
	room := c.h - 4
	if room <= 0 {
		return
	}
	scroll = clamp(scroll, 0, len(lines)-room)
	for i := 0; i < room && scroll+i < len(lines); i++ {
		l := lines[scroll+i]
		c.text(2, 3+i, l.text, l.fg, colorPanel)
	}
}

type line struct {
	text string
	fg   string
}

func drawLoading(c *canvas, text string) {
	bw := len([]rune(text)) + 4
	x, y := (c.w-bw)/2, (c.h-3)/2
	c.box(x, y, bw, 3, colorBorder, colorPanel)
	c.text(x+2, y+1, text, colorDim, colorPanel)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

