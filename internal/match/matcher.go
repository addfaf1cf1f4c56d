package match

import (
	"partner-map/internal/geo"
	"partner-map/internal/partners"
)

// Rule：命中的规则
type Rule int

const (
	RuleNone Rule = iota
	RuleID
	RuleName
	RuleAltName
)

func (r Rule) String() string {
	switch r {
	case RuleID:
		return "id"
	case RuleName:
		return "name"
	case RuleAltName:
		return "alt_name"
	}
	return "none"
}

// Match：按规则顺序解析要素对应的业务省份，未命中不是错误
func Match(regionID, regionName string, f *geo.Feature, records []partners.Province) (partners.Province, bool) {
	p, rule := Resolve(regionID, regionName, f, records)
	return p, rule != RuleNone
}

// 文档注释：解析并返回命中规则
// 背景：编码匹配优先；名称归一化匹配是必需的兜底，再退到要素上每个原始名称字段逐个比对。
// 约束：规则间按声明顺序，规则内按记录输入顺序，首个命中即返回；空编码与归一化后为空的名称不参与比较。
func Resolve(regionID, regionName string, f *geo.Feature, records []partners.Province) (partners.Province, Rule) {
	if regionID != "" {
		for _, r := range records {
			if r.ID == regionID {
				return r, RuleID
			}
		}
	}
	if want := Normalize(regionName); want != "" {
		for _, r := range records {
			if Normalize(r.Name) == want {
				return r, RuleName
			}
		}
	}
	var alts []string
	for _, c := range geo.NameCandidates(f) {
		if n := Normalize(c); n != "" {
			alts = append(alts, n)
		}
	}
	if len(alts) > 0 {
		for _, r := range records {
			got := Normalize(r.Name)
			if got == "" {
				continue
			}
			for _, a := range alts {
				if got == a {
					return r, RuleAltName
				}
			}
		}
	}
	return partners.Province{}, RuleNone
}

// Collision：归一化后同名的一组业务记录（按输入顺序，第一个会被选中）
type Collision struct {
	Key string
	IDs []string
}

// 文档注释：同名冲突诊断
// 背景：多个业务记录归一化同名时只会命中第一个，这可能掩盖数据质量问题；行为保持不变，仅供告警。
func Duplicates(records []partners.Province) []Collision {
	idx := make(map[string]int)
	var out []Collision
	seen := make(map[string]string)
	for _, r := range records {
		k := Normalize(r.Name)
		if k == "" {
			continue
		}
		first, ok := seen[k]
		if !ok {
			seen[k] = r.ID
			continue
		}
		i, ok := idx[k]
		if !ok {
			out = append(out, Collision{Key: k, IDs: []string{first}})
			i = len(out) - 1
			idx[k] = i
		}
		out[i].IDs = append(out[i].IDs, r.ID)
	}
	return out
}
