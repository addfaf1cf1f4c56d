// map-export：离线导出地图场景为 SVG（可模拟悬停或选中某个省份），用于静态报告
package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"partner-map/internal/config"
	"partner-map/internal/geo"
	"partner-map/internal/interaction"
	"partner-map/internal/logger"
	"partner-map/internal/partners"
	"partner-map/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	coll, err := geo.NewLoader(cfg.GeometrySource()).Load(ctx)
	if err != nil {
		l.Error("export_geo_error", "err", err)
		os.Exit(1)
	}

	src, closeSrc, err := partners.Open(ctx, cfg)
	if err != nil {
		l.Error("partners_source_error", "err", err)
		os.Exit(1)
	}
	defer closeSrc()
	records, err := src.List(ctx)
	if err != nil {
		// 与界面一致：业务数据不可用时仍导出全灰地图
		l.Warn("export_partners_unavailable", "err", err)
	}

	regions := render.Resolve(geo.Build(coll, cfg.Projection), records)
	state := simulate(cfg, regions)
	sc := render.Compose(render.Input{Regions: regions, State: state, TooltipOffset: render.DefaultTooltipOffset})

	f, err := os.Create(cfg.ExportOut)
	if err != nil {
		l.Error("export_create_error", "path", cfg.ExportOut, "err", err)
		os.Exit(1)
	}
	if err := render.WriteSVG(f, sc); err != nil {
		_ = f.Close()
		l.Error("export_write_error", "err", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		l.Error("export_write_error", "err", err)
		os.Exit(1)
	}
	l.Info("export_ok", "path", cfg.ExportOut, "regions", len(regions), "provinces", len(records))
}

// 文档注释：用真实的控制器推演导出时的交互状态
// 背景：悬停需要经过防抖，这里用立即到期的调度器把 Fired 同步送回控制器。
// 约束：悬停位置取该省份外包框中心（SVG 坐标）；选中的省份未匹配到业务记录时忽略。
func simulate(cfg *config.Config, regions []render.Region) interaction.State {
	var fired []interaction.Fired
	ctrl := interaction.New(interaction.Options{
		Scheduler: immediate{},
		Post:      func(f interaction.Fired) { fired = append(fired, f) },
	})
	defer ctrl.Dispose()

	if r, ok := render.FindRegion(regions, cfg.ExportHover); ok {
		c := r.Shape.Bound.Center()
		ctrl.Move(interaction.Point{X: c.X(), Y: c.Y()})
		ctrl.Enter(r.RegionID)
		for _, f := range fired {
			ctrl.Fire(f)
		}
	}
	if r, ok := render.FindRegion(regions, cfg.ExportSelect); ok {
		ctrl.Click(r.Province, r.Matched)
	}
	return ctrl.State()
}

type immediate struct{}

func (immediate) AfterFunc(_ time.Duration, f func()) interaction.Timer {
	f()
	return stopped{}
}

type stopped struct{}

func (stopped) Stop() bool { return false }
