package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// 文档注释：投影后的屏幕多边形
// 约束：与 GeoJSON 约定一致，每个 Polygon 第一环为外环、其余为洞；退化环（少于 3 点）已剔除。
type ScreenShape struct {
	Polys []orb.Polygon
	Bound orb.Bound
}

// Empty：无可绘制内容
func (s ScreenShape) Empty() bool { return len(s.Polys) == 0 }

// ProjectFeature：投影整个要素；几何缺失或任一坐标非有限数值时返回空形状
func (p Projection) ProjectFeature(f *Feature) ScreenShape {
	if f == nil || f.Geometry == nil {
		return ScreenShape{}
	}
	var src []orb.Polygon
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		src = []orb.Polygon{g}
	case orb.MultiPolygon:
		src = g
	default:
		return ScreenShape{}
	}
	var out ScreenShape
	for _, poly := range src {
		var pp orb.Polygon
		for _, ring := range poly {
			r, ok := p.projectRing(ring)
			if !ok {
				return ScreenShape{}
			}
			if len(r) < 3 {
				if len(pp) == 0 {
					break // 外环退化则整个面无效
				}
				continue
			}
			pp = append(pp, r)
		}
		if len(pp) > 0 {
			out.Polys = append(out.Polys, pp)
		}
	}
	if len(out.Polys) > 0 {
		out.Bound = orb.MultiPolygon(out.Polys).Bound()
	}
	return out
}

// 投影单环并去掉与首点重复的闭合点
func (p Projection) projectRing(ring orb.Ring) (orb.Ring, bool) {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	out := make(orb.Ring, 0, n)
	for _, pt := range ring[:n] {
		sp := p.Project(pt)
		if !finite(sp[0]) || !finite(sp[1]) {
			return nil, false
		}
		out = append(out, sp)
	}
	return out, true
}

// PathFor：SVG path 描述，空几何返回空串
func (p Projection) PathFor(f *Feature) string {
	return PathData(p.ProjectFeature(f))
}

// 文档注释：屏幕形状 → SVG path 字符串
// 背景：与 d3-geo 输出风格一致（"Mx,yLx,y…Z"，坐标保留三位小数），便于与 Web 地图产物比对。
func PathData(s ScreenShape) string {
	var b strings.Builder
	for _, poly := range s.Polys {
		for _, ring := range poly {
			for i, pt := range ring {
				if i == 0 {
					b.WriteByte('M')
				} else {
					b.WriteByte('L')
				}
				b.WriteString(num(pt[0]))
				b.WriteByte(',')
				b.WriteString(num(pt[1]))
			}
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // 去掉 -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
