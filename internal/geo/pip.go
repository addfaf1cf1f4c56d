package geo

import "github.com/paulmach/orb"

// 文档注释：屏幕坐标点入多边形判定（Even-Odd）
// 背景：终端宿主按单元格中心命中省份；先包围盒过滤，再逐面判定。
// 约束：外环命中且不在任一洞内视为命中；多面任一面命中即命中。
func (s ScreenShape) Contains(pt orb.Point) bool {
	if s.Empty() || !s.Bound.Contains(pt) {
		return false
	}
	for _, poly := range s.Polys {
		if polyContains(poly, pt) {
			return true
		}
	}
	return false
}

func polyContains(poly orb.Polygon, pt orb.Point) bool {
	if len(poly) == 0 || !ringContains(poly[0], pt) {
		return false
	}
	for _, hole := range poly[1:] {
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// 射线法判定点是否在环内
func ringContains(ring orb.Ring, pt orb.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x, y := pt[0], pt[1]
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// HitTest：返回包含该点的路径下标，未命中返回 -1
// 约束：与绘制顺序一致，后绘制的在上层，因此从后往前找
func HitTest(paths []ProjectedPath, pt orb.Point) int {
	for i := len(paths) - 1; i >= 0; i-- {
		if paths[i].Shape.Contains(pt) {
			return i
		}
	}
	return -1
}
