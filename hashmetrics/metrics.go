// Package hashmetrics instruments a hashing.Hasher with Prometheus
// collectors.
package hashmetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hasbyte1/go-pwhash/hashing"
)

// Operation label values.
const (
	OpMake        = "make"
	OpCheck       = "check"
	OpNeedsRehash = "needs_rehash"
	OpInfo        = "info"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultMismatch = "mismatch"
	ResultRehash   = "rehash"
	ResultError    = "error"
)

// Options configures the collectors created by [NewMetrics].
type Options struct {
	Registerer prometheus.Registerer
	Namespace  string
	Subsystem  string
	Buckets    []float64
}

// Metrics holds the password hashing collectors.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics constructs the collectors and registers them with the provided
// registerer.  Collectors already registered under the same name are reused,
// so NewMetrics may be called more than once per registry.
func NewMetrics(opts Options) (*Metrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "pwhash"
	}

	subsystem := opts.Subsystem
	if subsystem == "" {
		subsystem = "hasher"
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// Hashing is deliberately slow; the defaults top out at 10s.
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.ExponentialBuckets(0.001, 2.5, 12)
	}

	operations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "Total number of password hashing operations partitioned by driver, operation, and result.",
	}, []string{"driver", "operation", "result"}), "operations")
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Histogram of password hashing latencies in seconds partitioned by driver and operation.",
		Buckets:   buckets,
	}, []string{"driver", "operation"}), "duration")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Operations: operations,
		Duration:   duration,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, name string) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, fmt.Errorf("register %s collector: %w", name, err)
	}
	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return c, fmt.Errorf("existing %s collector has unexpected type %T", name, already.ExistingCollector)
	}
	return existing, nil
}

func (m *Metrics) observe(driver hashing.DriverName, op, result string, start time.Time) {
	m.Operations.WithLabelValues(string(driver), op, result).Inc()
	m.Duration.WithLabelValues(string(driver), op).Observe(time.Since(start).Seconds())
}
