package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// 墨卡托纬度上限，超出后 y 趋于无穷
const maxMercatorLat = 85.0511287798066

// 文档注释：固定参数的墨卡托投影
// 背景：经度线性映射到屏幕 x，纬度经 ln(tan(π/4+φ/2)) 非线性映射到 y；中心点投影到 Translate。
// 约束：参考配置 Center=(118,-2)、Scale=800、Translate=(480,250)，使群岛填满 viewBox "130 80 700 400"。
type Projection struct {
	Center    orb.Point // lon, lat（度）
	Scale     float64
	Translate orb.Point // 屏幕坐标
}

// Reference：参考部署使用的投影参数
func Reference() Projection {
	return Projection{
		Center:    orb.Point{118, -2},
		Scale:     800,
		Translate: orb.Point{480, 250},
	}
}

// Project：经纬度 → 屏幕坐标（y 向下）
func (p Projection) Project(pt orb.Point) orb.Point {
	x := p.Translate[0] + p.Scale*(radians(pt.Lon())-radians(p.Center.Lon()))
	y := p.Translate[1] - p.Scale*(mercY(pt.Lat())-mercY(p.Center.Lat()))
	return orb.Point{x, y}
}

// Invert：屏幕坐标 → 经纬度，终端状态栏显示指针所在经纬度
func (p Projection) Invert(pt orb.Point) orb.Point {
	lon := degrees((pt[0]-p.Translate[0])/p.Scale + radians(p.Center.Lon()))
	m := (p.Translate[1]-pt[1])/p.Scale + mercY(p.Center.Lat())
	lat := degrees(2*math.Atan(math.Exp(m)) - math.Pi/2)
	return orb.Point{lon, lat}
}

func mercY(lat float64) float64 {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	return math.Log(math.Tan(math.Pi/4 + radians(lat)/2))
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
