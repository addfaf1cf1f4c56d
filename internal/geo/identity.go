package geo

import (
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cast"
)

// UnknownName：所有名称字段缺失时的占位名
const UnknownName = "Unknown"

// Key：从属性推导出的规范标识
type Key struct {
	ID   string
	Name string
}

type accessor func(geojson.Properties) string

func field(name string) accessor {
	return func(p geojson.Properties) string { return propString(p, name) }
}

// 文档注释：字段优先级（顺序决定匹配结果，不可调整）
// 背景：省级编码优先 kode，其次 ID；名称按 Propinsi、NAME_1、name 取第一个非空值。
var (
	idFields   = []accessor{field("kode"), field("ID")}
	nameFields = []accessor{field("Propinsi"), field("NAME_1"), field("name")}
)

// 名称候选的原始字段（匹配第三条规则逐个比对）
var rawNameKeys = []string{"NAME_1", "name", "Propinsi"}

// CanonicalKey：纯函数，永不失败
func CanonicalKey(f *Feature) Key {
	var p geojson.Properties
	if f != nil {
		p = f.Properties
	}
	return Key{
		ID:   firstNonEmpty(p, idFields, ""),
		Name: firstNonEmpty(p, nameFields, UnknownName),
	}
}

// NameCandidates：要素上每个原始名称字段的值（缺失为空串），顺序固定
func NameCandidates(f *Feature) []string {
	out := make([]string, len(rawNameKeys))
	if f == nil {
		return out
	}
	for i, k := range rawNameKeys {
		out[i] = propString(f.Properties, k)
	}
	return out
}

func firstNonEmpty(p geojson.Properties, fields []accessor, fallback string) string {
	for _, get := range fields {
		if v := get(p); v != "" {
			return v
		}
	}
	return fallback
}

// 数字按最短表示输出（31 → "31"），无法转换的类型视为缺失
func propString(p geojson.Properties, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
