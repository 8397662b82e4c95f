// Package metrics exposes Prometheus counters for string-to-temporal
// conversions.
//
// # Overview
//
// Every conversion call reports, labelled by temporal kind:
//   - values parsed and values left null
//   - fast-path hits and fallbacks to the general parser
//   - parse cache hits and misses
//   - non-exact scan misses
//   - conversion latency
//
// # Basic Usage
//
//	c := metrics.NewCollector("datetime")
//	timer := metrics.NewTimer("to_datetime")
//	...
//	c.FastPath(n)
//	c.ObserveLatency(timer.Stop())
//
// Collectors are cheap: they hold curried label handles onto the package
// level vectors, which promauto registers with the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "strtemporal"

var (
	// ValuesProcessed counts input values by outcome (parsed, null).
	ValuesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "values_processed_total",
			Help:      "Total number of input values converted",
		},
		[]string{"kind", "status"},
	)

	// ParsePath counts how values were decoded (fast, fallback, scan).
	ParsePath = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_path_total",
			Help:      "Values decoded per parser path",
		},
		[]string{"kind", "path"},
	)

	// CacheLookups counts parse cache lookups (hit, miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Parse cache lookups",
		},
		[]string{"kind", "result"},
	)

	// ConversionLatency tracks whole-call latency in nanoseconds.
	ConversionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_latency_nanoseconds",
			Help:      "Conversion call latency in nanoseconds",
			Buckets: []float64{
				1e3, // 1μs - tiny batches
				1e4,
				1e5,
				1e6, // 1ms
				1e7,
				1e8,
				1e9, // 1s - very large columns
			},
		},
		[]string{"kind"},
	)

	// ConversionErrors counts calls that failed as a whole.
	ConversionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_errors_total",
			Help:      "Conversion calls that failed",
		},
		[]string{"kind", "type"},
	)
)

// Collector records the metrics of one temporal kind.
type Collector struct {
	kind       string
	parsed     prometheus.Counter
	nulls      prometheus.Counter
	fast       prometheus.Counter
	fallback   prometheus.Counter
	scanMiss   prometheus.Counter
	cacheHit   prometheus.Counter
	cacheMiss  prometheus.Counter
	latency    prometheus.Observer
	errorsByTy *prometheus.CounterVec
}

// NewCollector creates a collector labelled with kind.
func NewCollector(kind string) *Collector {
	return &Collector{
		kind:       kind,
		parsed:     ValuesProcessed.WithLabelValues(kind, "parsed"),
		nulls:      ValuesProcessed.WithLabelValues(kind, "null"),
		fast:       ParsePath.WithLabelValues(kind, "fast"),
		fallback:   ParsePath.WithLabelValues(kind, "fallback"),
		scanMiss:   ParsePath.WithLabelValues(kind, "scan_miss"),
		cacheHit:   CacheLookups.WithLabelValues(kind, "hit"),
		cacheMiss:  CacheLookups.WithLabelValues(kind, "miss"),
		latency:    ConversionLatency.WithLabelValues(kind),
		errorsByTy: ConversionErrors.MustCurryWith(prometheus.Labels{"kind": kind}),
	}
}

// Kind returns the label the collector reports under
func (c *Collector) Kind() string { return c.kind }

func (c *Collector) Parsed(n int)    { c.parsed.Add(float64(n)) }
func (c *Collector) Nulls(n int)     { c.nulls.Add(float64(n)) }
func (c *Collector) FastPath(n int)  { c.fast.Add(float64(n)) }
func (c *Collector) Fallback(n int)  { c.fallback.Add(float64(n)) }
func (c *Collector) ScanMiss(n int)  { c.scanMiss.Add(float64(n)) }
func (c *Collector) CacheHit(n int)  { c.cacheHit.Add(float64(n)) }
func (c *Collector) CacheMiss(n int) { c.cacheMiss.Add(float64(n)) }

// ObserveLatency records the duration of one call.
func (c *Collector) ObserveLatency(d time.Duration) {
	c.latency.Observe(float64(d.Nanoseconds()))
}

// Error counts a failed call under the given error type.
func (c *Collector) Error(errType string) {
	c.errorsByTy.WithLabelValues(errType).Inc()
}

// Timer provides a simple timing mechanism for measuring operation durations.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the timer name
func (t *Timer) Name() string { return t.name }

// Stop returns the elapsed duration since creation. It may be called more
// than once.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
