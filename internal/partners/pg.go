package partners

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"partner-map/internal/logger"
	"partner-map/internal/metrics"

	_ "github.com/lib/pq"
)

// PGRepository：读取后端 partner_locations 表
type PGRepository struct {
	db *sql.DB
}

func NewPGRepository(db *sql.DB) *PGRepository { return &PGRepository{db: db} }

// 文档注释：列出全部合作点
// 背景：与后端列表接口排序一致（省名、医院名升序），分组后省内顺序即展示顺序。
func (r *PGRepository) Locations(ctx context.Context) ([]Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, province_code, province_name, hospital_name, address, maintenance_count
        FROM partner_locations
        ORDER BY province_name ASC, hospital_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query partner_locations: %w", err)
	}
	defer rows.Close()
	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.ProvinceCode, &l.ProvinceName, &l.HospitalName, &l.Address, &l.MaintenanceCount); err != nil {
			return nil, fmt.Errorf("scan partner_locations: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// List：实现 Source，返回按省分组结果
func (r *PGRepository) List(ctx context.Context) ([]Province, error) {
	t0 := time.Now()
	locs, err := r.Locations(ctx)
	metrics.PartnerFetchDurationMs.WithLabelValues("pg").Observe(float64(time.Since(t0).Milliseconds()))
	if err != nil {
		metrics.PartnerFetchTotal.WithLabelValues("pg", "fail").Inc()
		logger.L().Error("partners_pg_error", "err", err)
		return nil, err
	}
	metrics.PartnerFetchTotal.WithLabelValues("pg", "ok").Inc()
	logger.L().Debug("partners_pg_ok", "rows", len(locs))
	return Group(locs), nil
}
