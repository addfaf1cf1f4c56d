package migrate

import (
	"database/sql"

	"partner-map/internal/logger"
)

// 背景：独立部署（无后端服务）时自动创建合作点表，保障地图可读
// 约束：使用 IF NOT EXISTS 避免与后端既有结构冲突；字段与后端模型一致
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS partner_locations (
            id BIGSERIAL PRIMARY KEY,
            province_code VARCHAR(10) NOT NULL,
            province_name VARCHAR(120) NOT NULL,
            hospital_name VARCHAR(150) NOT NULL,
            address VARCHAR(255) NOT NULL DEFAULT '',
            maintenance_count INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_partner_locations_province ON partner_locations(province_code)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
