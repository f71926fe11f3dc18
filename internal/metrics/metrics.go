package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StageTranscription = "transcription"
	StageAnalysis      = "analysis"
	StagePersist       = "persist"
	StageTotal         = "total"
)

var (
	CallsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pipeline_calls_active",
		Help: "Calls currently inside the processing pipeline",
	})

	CallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_calls_total",
		Help: "Calls that reached a terminal status",
	}, []string{"status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_seconds",
		Help:    "Per-stage latency",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	AnalysisSource = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_analysis_source_total",
		Help: "Completed analyses by the source that produced them",
	}, []string{"source"})

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_errors_total",
		Help: "Error counts by stage",
	}, []string{"stage", "error_type"})

	DispatchRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_dispatch_rejected_total",
		Help: "Dispatch attempts refused before the pipeline ran",
	}, []string{"reason"})
)
