package sox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_Singleton(t *testing.T) {
	assert.Same(t, GetMonitor(), GetMonitor())
}

func TestMonitor_TrackingAndRates(t *testing.T) {
	m := GetMonitor()
	m.Reset()
	defer m.Reset()

	assert.Equal(t, 100.0, m.SuccessRate(), "no invocations yet")
	assert.Equal(t, time.Duration(0), m.OldestProcess())

	m.TrackProcess(101)
	m.TrackProcess(102)
	assert.Equal(t, 2, m.ActiveProcesses())
	assert.Equal(t, int64(2), m.TotalInvocations())
	assert.Greater(t, m.OldestProcess(), time.Duration(0))

	m.UntrackProcess(101)
	assert.Equal(t, 1, m.ActiveProcesses())

	m.RecordFailure()
	assert.Equal(t, int64(1), m.FailedInvocations())
	assert.Equal(t, 50.0, m.SuccessRate())

	m.UntrackProcess(102)
	m.Reset()
	assert.Equal(t, 0, m.ActiveProcesses())
	assert.Equal(t, int64(0), m.TotalInvocations())
}
