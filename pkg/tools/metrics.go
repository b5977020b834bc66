// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsTools holds Prometheus metrics for tool calls.
type metricsTools struct {
	once sync.Once

	calls          *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	registryErrors *prometheus.CounterVec
}

var toolMetrics metricsTools

func (m *metricsTools) init() {
	m.once.Do(func() {
		m.calls = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rosa_tool_calls_total",
			Help: "Tool calls by tool and outcome",
		}, []string{"tool", "outcome"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rosa_tool_duration_seconds",
			Help:    "Tool call duration",
			Buckets: buckets,
		}, []string{"tool"})

		m.registryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rosa_registry_errors_total",
			Help: "Failed tool calls by error kind",
		}, []string{"kind"})

		prometheus.MustRegister(m.calls, m.duration, m.registryErrors)
	})
}

// recordCall counts one finished call. outcome is "ok" or the error kind.
func recordCall(tool string, result *ToolResult, elapsed time.Duration) {
	toolMetrics.init()
	outcome := "ok"
	if result.IsError {
		outcome = string(result.Kind)
		toolMetrics.registryErrors.WithLabelValues(outcome).Inc()
	}
	toolMetrics.calls.WithLabelValues(tool, outcome).Inc()
	toolMetrics.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
