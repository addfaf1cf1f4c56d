package partners

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// 文档注释：本地文件数据源（离线演示与导出）
// 背景：无后端时直接从 YAML/JSON 读取已分组的省份列表。
// 约束：.json 按 JSON 解析，其余扩展名按 YAML 解析；每次 List 都重新读取文件，便于热更新。
type FileSource struct {
	Path string
}

func (s FileSource) List(ctx context.Context) ([]Province, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var out []Province
	if strings.EqualFold(filepath.Ext(s.Path), ".json") {
		err = json.Unmarshal(b, &out)
	} else {
		err = yaml.Unmarshal(b, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return out, nil
}
