// 包 partners：业务侧合作伙伴数据（按省份分组），作为地图着色与详情面板的只读输入
package partners

// Partner：单个合作医院，详情面板原样展示
type Partner struct {
	ID          uint64 `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Address     string `json:"address" yaml:"address"`
	Maintenance int    `json:"maintenance" yaml:"maintenance"`
}

// 文档注释：省份及其合作伙伴列表
// 背景：由调用方提供，一次渲染周期内视为不可变；Partners 的元素数量决定着色档位。
// 约束：ID 为省份编码（如 "31"），Name 为业务库中的展示名，可能与几何数据源命名不一致。
type Province struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Partners []Partner `json:"partners" yaml:"partners"`
}

// Location：后端 partner_locations 表的一行
type Location struct {
	ID               uint64 `json:"id"`
	ProvinceCode     string `json:"province_code"`
	ProvinceName     string `json:"province_name"`
	HospitalName     string `json:"hospital_name"`
	Address          string `json:"address"`
	MaintenanceCount int    `json:"maintenance_count"`
}
