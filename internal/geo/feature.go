// 包 geo：省级行政区几何的加载、投影与标识推导
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// 文档注释：单个行政区几何要素
// 背景：外部 GeoJSON 的属性字段随数据提供方漂移（kode/ID、Propinsi/NAME_1/name），
// 因此属性保持松散的 map，所有读取都必须容忍缺失。
// 约束：Geometry 仅为 orb.Polygon 或 orb.MultiPolygon，无法解析或类型不支持时为 nil；加载后不可变。
type Feature struct {
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// Collection：一次成功加载的要素集合；指针身份用作投影缓存键
type Collection struct {
	Features []*Feature
}

// Len：要素数量，nil 安全
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Features)
}
