package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	ch rune
	fg string
	bg string
}

// 文档注释：字符画布
// 背景：提示框、图例、面板需要叠加在地图上，直接拼接带 ANSI 的字符串无法按列覆盖，
// 因此先在单元格网格上作画，最后按行把相同颜色的连续单元格合并后交给 lipgloss 着色。
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, ch rune, fg, bg string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{ch: ch, fg: fg, bg: bg}
}

// text：写一行文本，越界部分截断
func (c *canvas) text(x, y int, s, fg, bg string) {
	for _, r := range s {
		c.set(x, y, r, fg, bg)
		x++
	}
}

// fill：矩形填充背景
func (c *canvas) fill(x, y, w, h int, bg string) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			c.set(i, j, ' ', "", bg)
		}
	}
}

// box：圆角边框矩形，内部填充背景
func (c *canvas) box(x, y, w, h int, fg, bg string) {
	if w < 2 || h < 2 {
		return
	}
	c.fill(x, y, w, h, bg)
	for i := x + 1; i < x+w-1; i++ {
		c.set(i, y, '─', fg, bg)
		c.set(i, y+h-1, '─', fg, bg)
	}
	for j := y + 1; j < y+h-1; j++ {
		c.set(x, j, '│', fg, bg)
		c.set(x+w-1, j, '│', fg, bg)
	}
	c.set(x, y, '╭', fg, bg)
	c.set(x+w-1, y, '╮', fg, bg)
	c.set(x, y+h-1, '╰', fg, bg)
	c.set(x+w-1, y+h-1, '╯', fg, bg)
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				continue
			}
			b.WriteString(paint(row[start:x]))
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func paint(run []cell) string {
	rs := make([]rune, len(run))
	for i, c := range run {
		rs[i] = c.ch
	}
	st := lipgloss.NewStyle()
	if run[0].fg != "" {
		st = st.Foreground(lipgloss.Color(run[0].fg))
	}
	if run[0].bg != "" {
		st = st.Background(lipgloss.Color(run[0].bg))
	}
	return st.Render(string(rs))
}
