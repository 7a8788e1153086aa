package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "flickr_embed_cache_hits_total",
}, []string{"backend"})
var CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "flickr_embed_cache_misses_total",
}, []string{"backend"})
var CacheWriteFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "flickr_embed_cache_write_failures_total",
}, []string{"backend"})
var RemoteFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "flickr_embed_remote_fetches_total",
}, []string{"outcome"})
var Renders = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "flickr_embed_renders_total",
}, []string{"type", "outcome"})
var HttpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "flickr_embed_http_responses_total",
}, []string{"route", "method", "statusCode"})

func init() {
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(CacheWriteFailures)
	prometheus.MustRegister(RemoteFetches)
	prometheus.MustRegister(Renders)
	prometheus.MustRegister(HttpResponses)
}
