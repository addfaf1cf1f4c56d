package partners

import (
	"context"

	"partner-map/internal/config"
	"partner-map/internal/logger"
	"partner-map/internal/migrate"
	"partner-map/internal/utils"
)

// 文档注释：按 PARTNERS_SOURCE 选择数据源，并套上 Redis 缓存（未配置 REDIS_HOST 时透传）
// 约束：返回的 close 函数负责释放数据库与 Redis 连接
func Open(ctx context.Context, cfg *config.Config) (Source, func(), error) {
	l := logger.L()
	var (
		inner   Source
		closers []func()
	)
	switch cfg.PartnersSource {
	case "pg":
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := db.PingContext(ctx); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		if err := migrate.EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		inner = NewPGRepository(db)
	case "http":
		inner = NewHTTPSource(cfg.PartnersAPI, cfg.PartnersToken, nil)
	case "file":
		inner = FileSource{Path: cfg.PartnersFile}
	default:
		return nil, nil, ErrNoSource
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		closers = append(closers, func() { _ = rc.Close() })
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return NewCachedSource(inner, rc, cfg.PartnersCacheTTL), closeAll, nil
}
