// Package metrics exports Ward tree builds as Prometheus metrics. A
// Collector implements ward.Observer:
//
//	c := metrics.New(prometheus.DefaultRegisterer)
//	cfg := ward.DefaultConfig()
//	cfg.Observer = c
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/TrevorS/ward"
)

// Collector records build and repair events.
type Collector struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	merges        prometheus.Counter
	pushes        prometheus.Counter
	stalePops     prometheus.Counter
	compactions   prometheus.Counter
	peakHeap      prometheus.Histogram
	repairs       prometheus.Counter
	bridges       prometheus.Counter
}

var _ ward.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ward_tree_builds_total",
			Help: "Total number of Ward trees built",
		}, []string{"structured"}),
		buildDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ward_tree_build_duration_seconds",
			Help:    "Wall time of Ward tree builds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"structured"}),
		merges: f.NewCounter(prometheus.CounterOpts{
			Name: "ward_merges_total",
			Help: "Total number of merges performed",
		}),
		pushes: f.NewCounter(prometheus.CounterOpts{
			Name: "ward_heap_pushes_total",
			Help: "Total number of merge candidates pushed onto the heap",
		}),
		stalePops: f.NewCounter(prometheus.CounterOpts{
			Name: "ward_heap_stale_pops_total",
			Help: "Total number of stale merge candidates discarded at pop time",
		}),
		compactions: f.NewCounter(prometheus.CounterOpts{
			Name: "ward_heap_compactions_total",
			Help: "Total number of stale-candidate sweeps of the merge heap",
		}),
		peakHeap: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ward_heap_peak_length",
			Help:    "Largest merge heap length reached per build",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
		repairs: f.NewCounter(prometheus.CounterOpts{
			Name: "ward_connectivity_repairs_total",
			Help: "Total number of disconnected connectivity graphs repaired",
		}),
		bridges: f.NewCounter(prometheus.CounterOpts{
			Name: "ward_connectivity_bridges_total",
			Help: "Total number of bridging edges added by connectivity repair",
		}),
	}
}

// ObserveBuild implements ward.Observer.
func (c *Collector) ObserveBuild(nLeaves int, structured bool, s ward.BuildStats) {
	label := strconv.FormatBool(structured)
	c.builds.WithLabelValues(label).Inc()
	c.buildDuration.WithLabelValues(label).Observe(s.Elapsed.Seconds())
	if nLeaves > 1 {
		c.merges.Add(float64(nLeaves - 1))
	}
	c.pushes.Add(float64(s.Pushes))
	c.stalePops.Add(float64(s.StalePops))
	c.compactions.Add(float64(s.Compactions))
	c.peakHeap.Observe(float64(s.PeakHeapLen))
}

// ObserveRepair implements ward.Observer.
func (c *Collector) ObserveRepair(_, edgesAdded int) {
	c.repairs.Inc()
	c.bridges.Add(float64(edgesAdded))
}
