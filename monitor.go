package sox

import (
	"sync"
	"time"
)

// ProcessMonitor tracks live sox/play processes and invocation outcomes.
// Run and Play register every process they spawn, so callers issuing
// queries from many goroutines can watch what is in flight.
type ProcessMonitor struct {
	mu                sync.RWMutex
	active            map[int]time.Time // PID -> start time
	totalInvocations  int64
	failedInvocations int64
}

var (
	monitorInstance *ProcessMonitor
	monitorOnce     sync.Once
)

// GetMonitor returns the process-wide monitor instance
func GetMonitor() *ProcessMonitor {
	monitorOnce.Do(func() {
		monitorInstance = &ProcessMonitor{
			active: make(map[int]time.Time),
		}
	})
	return monitorInstance
}

// TrackProcess registers a newly spawned process
func (m *ProcessMonitor) TrackProcess(pid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[pid] = time.Now()
	m.totalInvocations++
}

// UntrackProcess removes a completed process
func (m *ProcessMonitor) UntrackProcess(pid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, pid)
}

// RecordFailure increments the failure counter. Non-zero exits and
// launch failures both count.
func (m *ProcessMonitor) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedInvocations++
}

// ActiveProcesses returns the number of currently live processes
func (m *ProcessMonitor) ActiveProcesses() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.active)
}

// TotalInvocations returns the total number of invocations attempted
func (m *ProcessMonitor) TotalInvocations() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalInvocations
}

// FailedInvocations returns the number of failed invocations
func (m *ProcessMonitor) FailedInvocations() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failedInvocations
}

// SuccessRate returns the success rate as a percentage
func (m *ProcessMonitor) SuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalInvocations == 0 {
		return 100.0
	}
	successful := m.totalInvocations - m.failedInvocations
	return float64(successful) / float64(m.totalInvocations) * 100.0
}

// OldestProcess returns the age of the oldest live process
func (m *ProcessMonitor) OldestProcess() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.active) == 0 {
		return 0
	}
	oldest := time.Now()
	for _, startTime := range m.active {
		if startTime.Before(oldest) {
			oldest = startTime
		}
	}
	return time.Since(oldest)
}

// Reset clears all monitoring statistics
func (m *ProcessMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active = make(map[int]time.Time)
	m.totalInvocations = 0
	m.failedInvocations = 0
}
