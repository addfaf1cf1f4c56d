package partners

import (
	"context"
	"errors"
)

// ErrNoSource：未配置任何合作伙伴数据源
var ErrNoSource = errors.New("partners: no source configured")

// Source：按省份分组的合作伙伴列表提供方
type Source interface {
	List(ctx context.Context) ([]Province, error)
}
