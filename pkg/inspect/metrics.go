// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "objprobe",
		Subsystem: "inspect",
		Name:      "operations_total",
		Help:      "Inspection operations by type and result.",
	}, []string{"op", "result"})

	opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "objprobe",
		Subsystem: "inspect",
		Name:      "operation_duration_seconds",
		Help:      "Wall-clock latency of inspection operations.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
	}, []string{"op"})
)

// RegisterMetrics registers the inspection metrics on reg. Registering
// twice is not an error.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{opsTotal, opDuration} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// observe records one operation. Use with a deferred call so the error
// outcome is read after the operation completes:
//
//	defer observe("stat", time.Now())(&err)
func observe(op string, start time.Time) func(*error) {
	return func(errp *error) {
		result := "ok"
		if *errp != nil {
			result = "error"
		}
		opsTotal.WithLabelValues(op, result).Inc()
		opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
