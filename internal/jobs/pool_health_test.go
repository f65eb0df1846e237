package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/wetee-dao/guildgate/internal/chain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockChecker struct {
	calls    atomic.Int32
	statuses []chain.NodeStatus
}

func (m *mockChecker) Check(context.Context) []chain.NodeStatus {
	m.calls.Add(1)
	return m.statuses
}

func TestPoolHealthJob_RunOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []chain.NodeStatus
		want     int
	}{
		{"all healthy", []chain.NodeStatus{{Healthy: true}, {Index: 1, Healthy: true}}, 2},
		{"one down", []chain.NodeStatus{{Healthy: true}, {Index: 1, Error: "dial tcp: refused"}}, 1},
		{"all down", []chain.NodeStatus{{Error: "eof"}}, 0},
		{"empty pool", nil, 0},
		{"pool busy", []chain.NodeStatus{{Busy: true, Error: "busy"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := NewPoolHealthJob(&mockChecker{statuses: tt.statuses}, time.Minute)
			assert.Equal(t, tt.want, job.RunOnce(context.Background()))
		})
	}
}

func TestPoolHealthJob_DefaultInterval(t *testing.T) {
	t.Parallel()
	job := NewPoolHealthJob(&mockChecker{}, 0)
	assert.Equal(t, 30*time.Second, job.interval)
}

func TestPoolHealthJob_StartStop(t *testing.T) {
	t.Parallel()

	checker := &mockChecker{statuses: []chain.NodeStatus{{Healthy: true}}}
	job := NewPoolHealthJob(checker, 5*time.Millisecond)

	assert.False(t, job.IsRunning())
	job.Start()
	job.Start()
	assert.True(t, job.IsRunning())

	assert.Eventually(t, func() bool { return checker.calls.Load() >= 2 }, time.Second, time.Millisecond)

	job.Stop()
	job.Stop()
	assert.False(t, job.IsRunning())

	after := checker.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, checker.calls.Load(), "no checks after Stop")
}

func TestPoolHealthJob_StopWithoutStart(t *testing.T) {
	t.Parallel()
	NewPoolHealthJob(&mockChecker{}, time.Minute).Stop()
}
