package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"partner-map/internal/logger"
	"partner-map/internal/metrics"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNotFeatureCollection：数据不是 FeatureCollection
var ErrNotFeatureCollection = errors.New("geo: not a feature collection")

// 文档注释：宽松解析 FeatureCollection
// 背景：单个要素坐标异常（缺失、非数字）不应拖垮整个集合；逐个要素解析，失败时保留属性、几何置空。
// 约束：只有外层结构损坏（非 JSON、缺少 features 数组）才返回错误。
func Decode(b []byte) (*Collection, error) {
	var env struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if !strings.EqualFold(env.Type, "FeatureCollection") || env.Features == nil {
		return nil, ErrNotFeatureCollection
	}
	coll := &Collection{Features: make([]*Feature, 0, len(env.Features))}
	bad := 0
	for i, raw := range env.Features {
		f := decodeFeature(raw)
		if f.Geometry == nil {
			bad++
			logger.L().Debug("geo_feature_no_geometry", "idx", i)
		}
		coll.Features = append(coll.Features, f)
	}
	if bad > 0 {
		metrics.GeoFeaturesMalformed.Add(float64(bad))
	}
	return coll, nil
}

func decodeFeature(raw json.RawMessage) *Feature {
	if gf, err := geojson.UnmarshalFeature(raw); err == nil {
		return &Feature{Geometry: keepAreal(gf.Geometry), Properties: gf.Properties}
	}
	// 几何损坏：只取属性
	var loose struct {
		Properties map[string]any `json:"properties"`
	}
	_ = json.Unmarshal(raw, &loose)
	return &Feature{Properties: geojson.Properties(loose.Properties)}
}

// 仅保留面状几何，且坐标必须为有限数值
func keepAreal(g orb.Geometry) orb.Geometry {
	switch t := g.(type) {
	case orb.Polygon:
		if finitePolygon(t) {
			return t
		}
	case orb.MultiPolygon:
		for _, p := range t {
			if !finitePolygon(p) {
				return nil
			}
		}
		return t
	}
	return nil
}

func finitePolygon(p orb.Polygon) bool {
	for _, r := range p {
		for _, pt := range r {
			if math.IsNaN(pt[0]) || math.IsInf(pt[0], 0) || math.IsNaN(pt[1]) || math.IsInf(pt[1], 0) {
				return false
			}
		}
	}
	return true
}
