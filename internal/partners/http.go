package partners

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"partner-map/internal/logger"
	"partner-map/internal/metrics"
)

// 文档注释：后端 HTTP 接口数据源
// 背景：与 Web 地图相同，调用 GET {base}/partners 获取扁平合作点列表后在客户端分组。
// 约束：响应体可以是 {"data": [...]} 包装，也可以是裸数组；非 2xx 视为失败，不重试。
type HTTPSource struct {
	base   string
	token  string
	client *http.Client
}

func NewHTTPSource(base, token string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPSource{base: strings.TrimRight(base, "/"), token: token, client: client}
}

func (s *HTTPSource) List(ctx context.Context) ([]Province, error) {
	t0 := time.Now()
	locs, err := s.fetch(ctx)
	metrics.PartnerFetchDurationMs.WithLabelValues("http").Observe(float64(time.Since(t0).Milliseconds()))
	if err != nil {
		metrics.PartnerFetchTotal.WithLabelValues("http", "fail").Inc()
		logger.L().Error("partners_http_error", "err", err)
		return nil, err
	}
	metrics.PartnerFetchTotal.WithLabelValues("http", "ok").Inc()
	logger.L().Debug("partners_http_ok", "rows", len(locs), "duration_ms", time.Since(t0).Milliseconds())
	return Group(locs), nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/partners", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if s.token != "" {
		req.Header.Set("authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("partners api: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeLocations(b)
}

func decodeLocations(b []byte) ([]Location, error) {
	var wrapped struct {
		Data []Location `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	var bare []Location
	if err := json.Unmarshal(b, &bare); err != nil {
		return nil, fmt.Errorf("decode partners: %w", err)
	}
	return bare, nil
}
