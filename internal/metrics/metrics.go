// Package metrics exports history state as prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/notify"
)

// Source is the observable history state the collector reads.
type Source interface {
	Subscribe(fn notify.Handler) *notify.Subscription
	UndoCount() int
	RedoCount() int
	PauseDepth() int
	BatchDepth() int
}

var _ Source = (*history.History)(nil)

// Collector keeps gauges in step with a history and counts its
// notifications and script runs.
type Collector struct {
	undoDepth  prometheus.Gauge
	redoDepth  prometheus.Gauge
	pauseDepth prometheus.Gauge
	batchDepth prometheus.Gauge

	notifications *prometheus.CounterVec
	scriptRuns    *prometheus.CounterVec
	scriptTime    prometheus.Histogram

	subs []*notify.Subscription
}

// New registers the editsys collectors with reg under namespace.
func New(reg prometheus.Registerer, namespace string) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		undoDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "undo_depth",
			Help:      "Number of entries on the undo stack",
		}),
		redoDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "redo_depth",
			Help:      "Number of entries on the redo stack",
		}),
		pauseDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "pause_depth",
			Help:      "Current pause nesting depth",
		}),
		batchDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "batch_depth",
			Help:      "Current batch nesting depth",
		}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "property_changes_total",
			Help:      "History property change notifications by property",
		}, []string{"property"}),
		scriptRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "script",
			Name:      "runs_total",
			Help:      "Script runs by result",
		}, []string{"result"}),
		scriptTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "script",
			Name:      "duration_seconds",
			Help:      "Duration of script runs",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		}),
	}
}

// Observe sets the gauges from src and keeps them current until Close.
func (c *Collector) Observe(src Source) {
	c.sync(src)
	c.subs = append(c.subs, src.Subscribe(func(_ any, args *notify.Args) {
		c.notifications.WithLabelValues(args.Name()).Inc()
		c.sync(src)
	}))
}

func (c *Collector) sync(src Source) {
	c.undoDepth.Set(float64(src.UndoCount()))
	c.redoDepth.Set(float64(src.RedoCount()))
	c.pauseDepth.Set(float64(src.PauseDepth()))
	c.batchDepth.Set(float64(src.BatchDepth()))
}

// ObserveScript records one script run.
func (c *Collector) ObserveScript(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.scriptRuns.WithLabelValues(result).Inc()
	c.scriptTime.Observe(d.Seconds())
}

// Close stops observing every source.
func (c *Collector) Close() {
	for _, s := range c.subs {
		s.Unsubscribe()
	}
	c.subs = nil
}

// WriteText writes every metric gathered from g in the prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
