// 包 config：从环境变量读取运行参数，缺省值与参考部署一致
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"partner-map/internal/geo"

	"github.com/paulmach/orb"
)

// Config：进程级配置
type Config struct {
	GeoJSONURL  string
	GeoJSONPath string // 非空时优先读本地文件

	PartnersSource   string // pg | http | file
	PartnersFile     string
	PartnersAPI      string
	PartnersToken    string
	PartnersWatch    bool
	PartnersCacheTTL time.Duration

	HoverDelay time.Duration
	Projection geo.Projection

	MetricsAddr string
	LogFile     string

	ExportOut    string
	ExportHover  string // 省份编码，导出时模拟悬停
	ExportSelect string // 省份编码，导出时模拟选中
}

// Load：读取环境变量，未设置或解析失败时回退到默认值
func Load() *Config {
	proj := geo.Reference()
	proj.Center = orb.Point{
		getFloat("MAP_CENTER_LON", proj.Center.Lon()),
		getFloat("MAP_CENTER_LAT", proj.Center.Lat()),
	}
	proj.Scale = getFloat("MAP_SCALE", proj.Scale)
	return &Config{
		GeoJSONURL:       getEnv("GEOJSON_URL", geo.DefaultURL),
		GeoJSONPath:      getEnv("GEOJSON_PATH", ""),
		PartnersSource:   strings.ToLower(getEnv("PARTNERS_SOURCE", "file")),
		PartnersFile:     getEnv("PARTNERS_FILE", "data/partners.yaml"),
		PartnersAPI:      getEnv("PARTNERS_API", "http://localhost:8080/api/v1"),
		PartnersToken:    getEnv("PARTNERS_TOKEN", ""),
		PartnersWatch:    getEnv("PARTNERS_WATCH", "true") == "true",
		PartnersCacheTTL: time.Duration(getInt("PARTNERS_CACHE_TTL_S", 300)) * time.Second,
		HoverDelay:       time.Duration(getInt("HOVER_DELAY_MS", 100)) * time.Millisecond,
		Projection:       proj,
		MetricsAddr:      getEnv("METRICS_ADDR", ""),
		LogFile:          getEnv("LOG_FILE", "partner-map.log"),
		ExportOut:        getEnv("EXPORT_OUT", "partner-map.svg"),
		ExportHover:      getEnv("EXPORT_HOVER", ""),
		ExportSelect:     getEnv("EXPORT_SELECT", ""),
	}
}

// GeometrySource：本地文件优先，否则走远程地址
func (c *Config) GeometrySource() geo.Source {
	if c.GeoJSONPath != "" {
		return geo.FileSource{Path: c.GeoJSONPath}
	}
	return geo.HTTPSource{URL: c.GeoJSONURL}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
