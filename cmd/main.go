// 程序入口：读取配置、选择合作伙伴数据源并启动终端地图
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"partner-map/internal/config"
	"partner-map/internal/geo"
	"partner-map/internal/logger"
	"partner-map/internal/metrics"
	"partner-map/internal/partners"
	"partner-map/internal/tui"
	"partner-map/internal/version"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	cfg := config.Load()

	// 终端被界面占用，日志写文件
	lf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Setup().Error("log_file_error", "path", cfg.LogFile, "err", err)
		os.Exit(1)
	}
	defer lf.Close()
	l := logger.SetupTo(lf)
	l.Info("startup", "commit", version.Commit, "partners_source", cfg.PartnersSource)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSrc, err := partners.Open(ctx, cfg)
	if err != nil {
		l.Error("partners_source_error", "err", err)
		os.Exit(1)
	}
	defer closeSrc()

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			l.Info("metrics_listen", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics_listen_error", "err", err)
			}
		}()
	}

	m := tui.New(tui.Options{
		Geometry:   geo.NewLoader(cfg.GeometrySource()),
		Partners:   src,
		Projection: cfg.Projection,
		HoverDelay: cfg.HoverDelay,
	})

	if cfg.PartnersSource == "file" && cfg.PartnersWatch {
		if err := partners.Watch(ctx, cfg.PartnersFile, m.Notify); err != nil {
			l.Warn("partners_watch_disabled", "path", cfg.PartnersFile, "err", err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		l.Error("tui_error", "err", err)
		m.Shutdown()
		os.Exit(1)
	}
	l.Info("shutdown")
}
