package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frame2action_predictions_total",
		Help: "Total number of prediction requests, by terminal status",
	}, []string{"status"})

	PredictionsByAction = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frame2action_predictions_by_action_total",
		Help: "Completed predictions by recognized action label",
	}, []string{"action"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frame2action_stage_duration_seconds",
		Help:    "Duration of recognition pipeline stages",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	}, []string{"stage"})

	FramesSampledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frame2action_frames_sampled_total",
		Help: "Total number of frames sampled across all requests",
	})

	InFlightRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "frame2action_inflight_requests",
		Help: "Number of recognition requests currently being processed",
	})
)
