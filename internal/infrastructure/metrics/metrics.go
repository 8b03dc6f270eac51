package metrics

import (
	"bytes"
	"fmt"

	"staticip-agent/internal/domain/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// registry is private so a one-shot run exports exactly the series below.
var registry = prometheus.NewRegistry()

var (
	AppliesTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "staticip_applies_total",
			Help: "Total number of subsystem apply attempts",
		},
		[]string{"subsystem", "status"}, // success, failed
	)

	FallbacksTotal = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "staticip_fallbacks_total",
			Help: "Total number of fallbacks to a lower-priority subsystem",
		},
	)

	BackupsCreatedTotal = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "staticip_backups_created_total",
			Help: "Total number of configuration backup files created",
		},
	)

	DetectionDuration = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staticip_detection_duration_seconds",
			Help:    "Time spent probing for network subsystems",
			Buckets: prometheus.DefBuckets,
		},
	)

	ApplyDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staticip_apply_duration_seconds",
			Help:    "Time spent applying configuration per subsystem",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"subsystem"},
	)

	AgentInfo = promauto.With(registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "staticip_agent_info",
			Help: "Agent information",
		},
		[]string{"version", "subsystem"},
	)
)

// RecordApply records one apply attempt.
func RecordApply(subsystem string, success bool, duration float64) {
	status := "success"
	if !success {
		status = "failed"
	}
	AppliesTotal.WithLabelValues(subsystem, status).Inc()
	ApplyDuration.WithLabelValues(subsystem).Observe(duration)
}

// RecordFallback records a fallback to the next subsystem.
func RecordFallback() {
	FallbacksTotal.Inc()
}

// RecordBackup records a created backup file.
func RecordBackup() {
	BackupsCreatedTotal.Inc()
}

// RecordDetection records the detection duration.
func RecordDetection(duration float64) {
	DetectionDuration.Observe(duration)
}

// SetAgentInfo records the agent version and the subsystem that won.
func SetAgentInfo(version, subsystem string) {
	AgentInfo.WithLabelValues(version, subsystem).Set(1)
}

// WriteTextfile dumps the registry in exposition format to a node_exporter
// textfile-collector path. The process exits right after a run, so a
// textfile is the export path instead of an HTTP listener.
func WriteTextfile(fs interfaces.FileSystem, path string) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", family.GetName(), err)
		}
	}

	return fs.WriteFile(path, buf.Bytes(), 0644)
}
