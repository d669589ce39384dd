package hashmetrics

import (
	"time"

	"github.com/hasbyte1/go-pwhash/hashing"
)

// Hasher decorates a [hashing.Hasher], recording one counter increment and
// one latency observation per call.  The driver label is the wrapped
// hasher's [hashing.Hasher.Driver].
type Hasher struct {
	next    hashing.Hasher
	metrics *Metrics
}

var _ hashing.Hasher = (*Hasher)(nil)

// Wrap returns next instrumented with m.  A nil m returns next unchanged.
func Wrap(next hashing.Hasher, m *Metrics) hashing.Hasher {
	if m == nil || next == nil {
		return next
	}
	return &Hasher{next: next, metrics: m}
}

// WrapManager re-registers each named driver of mgr wrapped with m.  It
// fails with [hashing.ErrDriverNotFound] if a name is not registered.
func WrapManager(mgr *hashing.Manager, m *Metrics, drivers ...hashing.DriverName) error {
	for _, d := range drivers {
		h, err := mgr.Driver(d)
		if err != nil {
			return err
		}
		if err := mgr.RegisterDriver(d, Wrap(h, m)); err != nil {
			return err
		}
	}
	return nil
}

// Driver returns the wrapped hasher's driver.
func (h *Hasher) Driver() hashing.DriverName { return h.next.Driver() }

// Make hashes password and records the outcome under operation "make".
func (h *Hasher) Make(password string) (string, error) {
	start := time.Now()
	hash, err := h.next.Make(password)
	h.metrics.observe(h.Driver(), OpMake, errResult(err), start)
	return hash, err
}

// Check verifies password and records ok, mismatch or error.
func (h *Hasher) Check(password, hash string) (bool, error) {
	start := time.Now()
	ok, err := h.next.Check(password, hash)
	result := errResult(err)
	if err == nil && !ok {
		result = ResultMismatch
	}
	h.metrics.observe(h.Driver(), OpCheck, result, start)
	return ok, err
}

// NeedsRehash delegates and records rehash or ok.
func (h *Hasher) NeedsRehash(password, hash string) bool {
	start := time.Now()
	needs := h.next.NeedsRehash(password, hash)
	result := ResultOK
	if needs {
		result = ResultRehash
	}
	h.metrics.observe(h.Driver(), OpNeedsRehash, result, start)
	return needs
}

// Info parses hash and records the outcome under operation "info".
func (h *Hasher) Info(hash string) (hashing.HashInfo, error) {
	start := time.Now()
	info, err := h.next.Info(hash)
	h.metrics.observe(h.Driver(), OpInfo, errResult(err), start)
	return info, err
}

func errResult(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
