package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"partner-map/internal/logger"
	"partner-map/internal/metrics"
)

// DefaultURL：印尼省界 GeoJSON 公共数据源
const DefaultURL = "https://raw.githubusercontent.com/superpikar/indonesia-geojson/master/indonesia-province.json"

// Source：几何要素集合提供方
type Source interface {
	Fetch(ctx context.Context) (*Collection, error)
}

// HTTPSource：从远端 URL 拉取，无鉴权、无分页
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) (*Collection, error) {
	u := s.URL
	if u == "" {
		u = DefaultURL
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geojson fetch: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// FileSource：读取本地 GeoJSON 文件
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (*Collection, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// 文档注释：一次性懒加载
// 背景：组件挂载时触发一次拉取，结果（成功或失败）归组件实例所有；重载需新建 Loader。
// 约束：不重试；并发调用 Load 只会触发一次 Fetch，其余调用等待同一结果。
type Loader struct {
	src  Source
	once sync.Once
	done chan struct{}
	coll *Collection
	err  error
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src, done: make(chan struct{})}
}

// Load：首次调用执行拉取，后续返回同一结果
func (l *Loader) Load(ctx context.Context) (*Collection, error) {
	l.once.Do(func() {
		defer close(l.done)
		t0 := time.Now()
		l.coll, l.err = l.src.Fetch(ctx)
		metrics.GeoLoadDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
		if l.err != nil {
			metrics.GeoLoadsTotal.WithLabelValues("fail").Inc()
			logger.L().Error("geo_load_error", "err", l.err)
			return
		}
		metrics.GeoLoadsTotal.WithLabelValues("ok").Inc()
		logger.L().Info("geo_load_ok", "features", l.coll.Len(), "duration_ms", time.Since(t0).Milliseconds())
	})
	<-l.done
	return l.coll, l.err
}

// Resolved：结果是否已就绪（无论成功失败）
func (l *Loader) Resolved() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
