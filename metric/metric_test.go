package metric_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/soundgraph/metric"
)

func TestMeasure(t *testing.T) {
	var tests = []struct {
		kind             string
		routines         int
		outcomes         []metric.Outcome
		expectedResolves string
		expectedAbsent   string
		expectedFailures string
	}{
		{
			kind:             "test.volume",
			routines:         2,
			outcomes:         []metric.Outcome{metric.Resolved, metric.Absent, metric.Absent},
			expectedResolves: "6",
			expectedAbsent:   "4",
			expectedFailures: "0",
		},
		{
			kind:             "test.file",
			routines:         3,
			outcomes:         []metric.Outcome{metric.Failed},
			expectedResolves: "3",
			expectedAbsent:   "0",
			expectedFailures: "3",
		},
	}

	for _, c := range tests {
		wg := &sync.WaitGroup{}
		wg.Add(c.routines)
		for i := 0; i < c.routines; i++ {
			go func() {
				defer wg.Done()
				for _, o := range c.outcomes {
					metric.Measure(c.kind)(o)
				}
			}()
		}
		// check if no data race.
		wg.Wait()
		values := metric.Get(c.kind)
		assert.Equal(t, c.expectedResolves, values[metric.ResolveCounter])
		assert.Equal(t, c.expectedAbsent, values[metric.AbsentCounter])
		assert.Equal(t, c.expectedFailures, values[metric.FailureCounter])
		assert.NotEmpty(t, values[metric.DurationCounter])
	}

	all := metric.GetAll()
	assert.Contains(t, all, "test.volume")
	assert.Contains(t, all, "test.file")
	assert.Empty(t, metric.Get("test.unknown"))
}
