package hashmetrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hasbyte1/go-pwhash/hashing"
	"github.com/hasbyte1/go-pwhash/hashmetrics"
)

const shadowHash = "$5$saltstring$5B8vYYiY.CVt1RlTTf8KbXBH3hsxY/GNooZaBBGWEc5"

func newTestMetrics(t *testing.T) *hashmetrics.Metrics {
	t.Helper()
	m, err := hashmetrics.NewMetrics(hashmetrics.Options{Registerer: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m
}

func count(m *hashmetrics.Metrics, driver hashing.DriverName, op, result string) float64 {
	return testutil.ToFloat64(m.Operations.WithLabelValues(string(driver), op, result))
}

func TestHasherRecordsOperations(t *testing.T) {
	m := newTestMetrics(t)
	h := hashmetrics.Wrap(hashing.NewSha256CryptHasher(hashing.DefaultShaCryptOptions()), m)

	hash, err := h.Make("pw")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if ok, err := h.Check("pw", hash); err != nil || !ok {
		t.Fatalf("Check: ok=%v err=%v", ok, err)
	}
	if ok, _ := h.Check("nope", hash); ok {
		t.Fatal("Check wrong password returned true")
	}
	if _, err := h.Check("pw", "garbage"); err == nil {
		t.Fatal("Check garbage: expected error")
	}
	if !h.NeedsRehash("Hello world!", shadowHash) {
		t.Fatal("expected NeedsRehash for a 10 character salt")
	}
	if _, err := h.Info(hash); err != nil {
		t.Fatalf("Info: %v", err)
	}

	d := hashing.DriverSha256Crypt
	tests := []struct {
		op, result string
		want       float64
	}{
		{hashmetrics.OpMake, hashmetrics.ResultOK, 1},
		{hashmetrics.OpCheck, hashmetrics.ResultOK, 1},
		{hashmetrics.OpCheck, hashmetrics.ResultMismatch, 1},
		{hashmetrics.OpCheck, hashmetrics.ResultError, 1},
		{hashmetrics.OpNeedsRehash, hashmetrics.ResultRehash, 1},
		{hashmetrics.OpNeedsRehash, hashmetrics.ResultOK, 0},
		{hashmetrics.OpInfo, hashmetrics.ResultOK, 1},
	}
	for _, tt := range tests {
		if got := count(m, d, tt.op, tt.result); got != tt.want {
			t.Errorf("operations{%s,%s} = %f, want %f", tt.op, tt.result, got, tt.want)
		}
	}

	if samples := testutil.CollectAndCount(m.Duration); samples != 4 {
		t.Errorf("expected 4 duration series, got %d", samples)
	}
}

func TestNewMetricsReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := hashmetrics.NewMetrics(hashmetrics.Options{Registerer: registry})
	if err != nil {
		t.Fatalf("first NewMetrics: %v", err)
	}
	second, err := hashmetrics.NewMetrics(hashmetrics.Options{Registerer: registry})
	if err != nil {
		t.Fatalf("second NewMetrics: %v", err)
	}
	if first.Operations != second.Operations || first.Duration != second.Duration {
		t.Fatal("expected collectors to be reused")
	}
}

func TestNewMetricsConflictingCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pwhash",
		Subsystem: "hasher",
		Name:      "operations_total",
		Help:      "Total number of password hashing operations partitioned by driver, operation, and result.",
	}))
	if _, err := hashmetrics.NewMetrics(hashmetrics.Options{Registerer: registry}); err == nil {
		t.Fatal("expected error for conflicting collector")
	}
}

func TestWrapNilMetrics(t *testing.T) {
	inner := hashing.NewSha512CryptHasher(hashing.DefaultShaCryptOptions())
	if got := hashmetrics.Wrap(inner, nil); got != hashing.Hasher(inner) {
		t.Fatal("expected Wrap with nil metrics to return the hasher unchanged")
	}
}

func TestWrapManager(t *testing.T) {
	m := newTestMetrics(t)
	mgr := hashing.NewManager(hashing.DriverSha512Crypt)
	_ = mgr.RegisterDriver(hashing.DriverSha256Crypt, hashing.NewSha256CryptHasher(hashing.DefaultShaCryptOptions()))
	_ = mgr.RegisterDriver(hashing.DriverSha512Crypt, hashing.NewSha512CryptHasher(hashing.DefaultShaCryptOptions()))

	if err := hashmetrics.WrapManager(mgr, m, hashing.DriverSha256Crypt, hashing.DriverSha512Crypt); err != nil {
		t.Fatalf("WrapManager: %v", err)
	}
	if _, err := mgr.Make("pw"); err != nil {
		t.Fatalf("Make: %v", err)
	}
	if ok, err := mgr.CheckWithDetect("Hello world!", shadowHash); err != nil || !ok {
		t.Fatalf("CheckWithDetect: ok=%v err=%v", ok, err)
	}
	if got := count(m, hashing.DriverSha512Crypt, hashmetrics.OpMake, hashmetrics.ResultOK); got != 1 {
		t.Errorf("sha512crypt make = %f, want 1", got)
	}
	if got := count(m, hashing.DriverSha256Crypt, hashmetrics.OpCheck, hashmetrics.ResultOK); got != 1 {
		t.Errorf("sha256crypt check = %f, want 1", got)
	}

	err := hashmetrics.WrapManager(mgr, m, hashing.DriverBcrypt)
	if !errors.Is(err, hashing.ErrDriverNotFound) {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}
}
