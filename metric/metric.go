// Package metric publishes node resolution counters with expvar.
package metric

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const kindsLabel = "soundgraph.kinds"

const (
	// ResolveCounter counts resolutions.
	ResolveCounter = "Resolutions"
	// AbsentCounter counts resolutions without sound.
	AbsentCounter = "Absent"
	// FailureCounter counts failed resolutions.
	FailureCounter = "Failures"
	// DurationCounter sums time spent in resolution, upstream included.
	DurationCounter = "Duration"
)

// Outcome is a result of resolution.
type Outcome int

// Resolution outcomes.
const (
	Resolved Outcome = iota
	Absent
	Failed
)

var (
	kinds = metrics{
		m: make(map[string]metric),
	}

	counters = []string{
		ResolveCounter,
		AbsentCounter,
		FailureCounter,
		DurationCounter,
	}
)

// MeasureFunc captures the outcome of resolution.
type MeasureFunc func(Outcome)

// Measure starts measuring a resolution of node kind.
func Measure(kind string) MeasureFunc {
	m := kinds.get(kind)
	startedAt := time.Now()
	return func(o Outcome) {
		m.duration.add(time.Since(startedAt))
		m.resolutions.Add(1)
		switch o {
		case Absent:
			m.absent.Add(1)
		case Failed:
			m.failures.Add(1)
		}
	}
}

// Get returns counters for provided kind.
func Get(kind string) map[string]string {
	m := make(map[string]string)
	for _, counter := range counters {
		if v := expvar.Get(key(kind, counter)); v != nil {
			m[counter] = v.String()
		}
	}
	return m
}

// GetAll returns counters for all measured kinds.
func GetAll() map[string]map[string]string {
	m := make(map[string]map[string]string)
	kinds.Lock()
	defer kinds.Unlock()
	for kind := range kinds.m {
		m[kind] = Get(kind)
	}
	return m
}

type metrics struct {
	sync.Mutex
	m map[string]metric
}

func (m *metrics) get(kind string) metric {
	m.Lock()
	defer m.Unlock()
	if metric, ok := m.m[kind]; ok {
		return metric
	}
	metric := newMetric(kind)
	m.m[kind] = metric
	return metric
}

type metric struct {
	resolutions *expvar.Int
	absent      *expvar.Int
	failures    *expvar.Int
	duration    *duration
}

func newMetric(kind string) metric {
	m := metric{
		resolutions: expvar.NewInt(key(kind, ResolveCounter)),
		absent:      expvar.NewInt(key(kind, AbsentCounter)),
		failures:    expvar.NewInt(key(kind, FailureCounter)),
		duration:    &duration{},
	}
	expvar.Publish(key(kind, DurationCounter), m.duration)
	return m
}

func key(kind, counter string) string {
	return fmt.Sprintf("%s.%s.%s", kindsLabel, kind, counter)
}

// duration allows to format time.Duration metric values.
type duration struct {
	d int64
}

func (v *duration) String() string {
	return fmt.Sprintf("%q", time.Duration(atomic.LoadInt64(&v.d)))
}

func (v *duration) add(delta time.Duration) {
	atomic.AddInt64(&v.d, int64(delta))
}
