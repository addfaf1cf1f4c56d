package tui

import (
	"math"

	"partner-map/internal/geo"
	"partner-map/internal/render"

	"github.com/paulmach/orb"
)

// 终端单元格高约为宽的两倍
const cellAspect = 2.0

// 文档注释：单元格 ↔ viewBox 坐标换算
// 背景：等价于 SVG 的 xMidYMid meet，地图按比例缩放后居中，不拉伸。
type viewport struct {
	w, h   int
	ox, oy float64 // 左上角单元格外沿对应的 viewBox 坐标
	unit   float64 // 每列对应的 viewBox 单位；每行为 unit*cellAspect
}

func newViewport(w, h int) viewport {
	vp := viewport{w: w, h: h}
	if w <= 0 || h <= 0 {
		return vp
	}
	vx, vy, vw, vh := render.ViewBox[0], render.ViewBox[1], render.ViewBox[2], render.ViewBox[3]
	vp.unit = math.Max(vw/float64(w), vh/(float64(h)*cellAspect))
	vp.ox = vx + (vw-float64(w)*vp.unit)/2
	vp.oy = vy + (vh-float64(h)*vp.unit*cellAspect)/2
	return vp
}

// toView：单元格中心点
func (vp viewport) toView(cx, cy int) orb.Point {
	return orb.Point{
		vp.ox + (float64(cx)+0.5)*vp.unit,
		vp.oy + (float64(cy)+0.5)*vp.unit*cellAspect,
	}
}

// 文档注释：把投影形状栅格化为“单元格 → 路径下标”
// 约束：按单元格中心做点内判断，与 geo.HitTest 的上层优先规则一致；未覆盖为 -1。
func rasterize(paths []geo.ProjectedPath, vp viewport) []int {
	grid := make([]int, vp.w*vp.h)
	for cy := 0; cy < vp.h; cy++ {
		for cx := 0; cx < vp.w; cx++ {
			grid[cy*vp.w+cx] = geo.HitTest(paths, vp.toView(cx, cy))
		}
	}
	return grid
}

// 右侧或下方单元格归属不同即为边界
func boundary(grid []int, w, h, cx, cy int) bool {
	own := grid[cy*w+cx]
	if cx+1 < w && grid[cy*w+cx+1] != own {
		return true
	}
	if cy+1 < h && grid[(cy+1)*w+cx] != own {
		return true
	}
	return false
}
