// 包 tier：合作伙伴数量 → 着色档位
package tier

// Tier：离散着色档位
type Tier int

const (
	None Tier = iota
	Low
	High
)

// For：0 → None，1–3 → Low，>3 → High；负数按 0 处理
func For(count int) Tier {
	switch {
	case count <= 0:
		return None
	case count <= 3:
		return Low
	}
	return High
}

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "none"
}

// Fill：档位填充色（与 Web 地图的 Tailwind gray-100 / amber-100 / emerald-100 一致）
func (t Tier) Fill() string {
	switch t {
	case Low:
		return "#fef3c7"
	case High:
		return "#d1fae5"
	}
	return "#f3f4f6"
}

// Stroke：图例色块描边
func (t Tier) Stroke() string {
	switch t {
	case Low:
		return "#fde68a"
	case High:
		return "#a7f3d0"
	}
	return "#e5e7eb"
}

// LegendEntry：图例条目
type LegendEntry struct {
	Tier  Tier
	Label string
}

// Legend：每个档位一条，顺序固定
func Legend() []LegendEntry {
	return []LegendEntry{
		{Tier: None, Label: "0 partners"},
		{Tier: Low, Label: "1-3 partners"},
		{Tier: High, Label: ">3 partners"},
	}
}
