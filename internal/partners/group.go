package partners

// 文档注释：按省份编码分组
// 背景：后端只返回扁平的合作点列表，地图需要“省份 → 合作伙伴”的结构。
// 约束：省份顺序按首次出现排列，省内顺序保持输入顺序；缺失省名时用编码表回填。
func Group(locs []Location) []Province {
	idx := make(map[string]int)
	var out []Province
	for _, l := range locs {
		i, ok := idx[l.ProvinceCode]
		if !ok {
			name := l.ProvinceName
			if name == "" {
				name = ProvinceName(l.ProvinceCode)
			}
			out = append(out, Province{ID: l.ProvinceCode, Name: name})
			i = len(out) - 1
			idx[l.ProvinceCode] = i
		}
		out[i].Partners = append(out[i].Partners, Partner{
			ID:          l.ID,
			Name:        l.HospitalName,
			Address:     l.Address,
			Maintenance: l.MaintenanceCount,
		})
	}
	return out
}
