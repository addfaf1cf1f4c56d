package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GeoLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partnermap_geo_loads_total",
		Help: "Geometry collection loads by outcome",
	}, []string{"outcome"})
	GeoLoadDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "partnermap_geo_load_duration_ms",
		Help:    "Geometry collection load duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	GeoFeaturesMalformed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partnermap_geo_features_malformed_total",
		Help: "Features loaded without usable geometry",
	})
	MatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partnermap_matches_total",
		Help: "Feature to province resolutions by rule",
	}, []string{"rule"})
	HoverActivationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partnermap_hover_activations_total",
		Help: "Hover debounces that committed to a tooltip",
	})
	HoverStaleFiresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partnermap_hover_stale_fires_total",
		Help: "Hover timer callbacks dropped after cancellation",
	})
	PartnerFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partnermap_partner_fetch_total",
		Help: "Partner list fetches by source and outcome",
	}, []string{"source", "outcome"})
	PartnerFetchDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "partnermap_partner_fetch_duration_ms",
		Help:    "Partner list fetch duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"source"})
	PartnerCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partnermap_partner_cache_hits_total",
		Help: "Partner list redis cache hits",
	})
	PartnerCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partnermap_partner_cache_misses_total",
		Help: "Partner list redis cache misses",
	})
)

func init() {
	prometheus.MustRegister(GeoLoadsTotal)
	prometheus.MustRegister(GeoLoadDurationMs)
	prometheus.MustRegister(GeoFeaturesMalformed)
	prometheus.MustRegister(MatchesTotal)
	prometheus.MustRegister(HoverActivationsTotal)
	prometheus.MustRegister(HoverStaleFiresTotal)
	prometheus.MustRegister(PartnerFetchTotal)
	prometheus.MustRegister(PartnerFetchDurationMs)
	prometheus.MustRegister(PartnerCacheHitsTotal)
	prometheus.MustRegister(PartnerCacheMissesTotal)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：交互进程可选暴露 /metrics（METRICS_ADDR），便于观察加载与匹配情况。
func Handler() http.Handler { return promhttp.Handler() }
