package geo

// 文档注释：投影路径缓存项
// 背景：每次重绘都重新投影全部省界代价高；按“集合身份 + 投影参数”缓存，任一变化即失效。
type ProjectedPath struct {
	Feature    *Feature
	RegionID   string
	RegionName string
	Path       string
	Shape      ScreenShape
}

// PathCache：单组件实例私有，仅在事件循环内访问，不加锁
type PathCache struct {
	coll  *Collection
	proj  Projection
	paths []ProjectedPath
	valid bool
}

// Paths：返回缓存结果，输入未变时切片引用保持稳定
func (c *PathCache) Paths(coll *Collection, proj Projection) []ProjectedPath {
	if c.valid && c.coll == coll && c.proj == proj {
		return c.paths
	}
	c.coll, c.proj, c.valid = coll, proj, true
	c.paths = Build(coll, proj)
	return c.paths
}

// Invalidate：强制下次重新计算（重新加载几何时调用）
func (c *PathCache) Invalidate() { c.valid = false }

// Build：不带缓存地为集合中每个要素生成路径与规范标识
func Build(coll *Collection, proj Projection) []ProjectedPath {
	if coll.Len() == 0 {
		return nil
	}
	out := make([]ProjectedPath, 0, len(coll.Features))
	for _, f := range coll.Features {
		key := CanonicalKey(f)
		shape := proj.ProjectFeature(f)
		out = append(out, ProjectedPath{
			Feature:    f,
			RegionID:   key.ID,
			RegionName: key.Name,
			Path:       PathData(shape),
			Shape:      shape,
		})
	}
	return out
}
