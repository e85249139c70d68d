// Package metrics exposes build and relocation counters on an isolated
// Prometheus registry. The command-line tools are short-lived, so metrics are
// exported through the node_exporter textfile format instead of an HTTP
// endpoint.
package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-docnav/internal/navigation"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

// Metrics holds every docnav collector.
type Metrics struct {
	Registry *prometheus.Registry

	// Navigation
	NavigationBuildsTotal *prometheus.CounterVec
	NavigationEntries     *prometheus.GaugeVec

	// Relocation
	RelocationDocumentsTotal *prometheus.CounterVec
	RelocationAssetsTotal    prometheus.Counter

	// Timing of top-level operations (sidebar, relocate, hook).
	OperationDurationSeconds *prometheus.HistogramVec

	BuildInfo *prometheus.GaugeVec
}

// New creates a Metrics instance with all collectors registered on a fresh registry.
func New(version string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		NavigationBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docnav_navigation_builds_total",
				Help: "Total number of sidebar section builds.",
			},
			[]string{"section"},
		),
		NavigationEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docnav_navigation_entries",
				Help: "Entries produced by the last build of a section, by resolution kind.",
			},
			[]string{"section", "kind"},
		),
		RelocationDocumentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docnav_relocation_documents_total",
				Help: "Staged documents processed by relocation, by outcome.",
			},
			[]string{"outcome"},
		),
		RelocationAssetsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docnav_relocation_assets_total",
				Help: "Images moved into the shared asset directory.",
			},
		),
		OperationDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docnav_operation_duration_seconds",
				Help:    "Duration of docnav operations in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation", "result"},
		),
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docnav_info",
				Help: "Build information for docnav.",
			},
			[]string{"version", "go_version"},
		),
	}

	reg.MustRegister(
		m.NavigationBuildsTotal,
		m.NavigationEntries,
		m.RelocationDocumentsTotal,
		m.RelocationAssetsTotal,
		m.OperationDurationSeconds,
		m.BuildInfo,
	)

	if version == "" {
		version = "dev"
	}
	m.BuildInfo.WithLabelValues(version, runtime.Version()).Set(1)

	return m
}

var _ navigation.Observer = (*Metrics)(nil)

// ObserveSection records the outcome of a section build.
func (m *Metrics) ObserveSection(section string, stats navigation.Stats) {
	if m == nil {
		return
	}
	m.NavigationBuildsTotal.WithLabelValues(section).Inc()
	for kind, value := range map[string]int{
		"page":      stats.Pages,
		"group":     stats.Groups,
		"collapsed": stats.Collapsed,
		"flattened": stats.Flattened,
		"skipped":   stats.Skipped,
		"omitted":   stats.Omitted,
	} {
		m.NavigationEntries.WithLabelValues(section, kind).Set(float64(value))
	}
}

// ObserveRelocation records a relocation batch.
func (m *Metrics) ObserveRelocation(result interfaces.RelocationResult) {
	if m == nil {
		return
	}
	m.RelocationDocumentsTotal.WithLabelValues("moved").Add(float64(len(result.Moved)))
	m.RelocationDocumentsTotal.WithLabelValues("failed").Add(float64(len(result.Failed)))
	m.RelocationDocumentsTotal.WithLabelValues("skipped").Add(float64(result.Skipped))
	m.RelocationAssetsTotal.Add(float64(len(result.Assets)))
}

// ObserveOperation records how long operation took; err selects the result label.
func (m *Metrics) ObserveOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.OperationDurationSeconds.WithLabelValues(operation, result).Observe(time.Since(started).Seconds())
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("metrics: write textfile %s: %w", path, err)
	}
	return nil
}
