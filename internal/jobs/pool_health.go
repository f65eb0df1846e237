package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wetee-dao/guildgate/internal/chain"
)

// PoolChecker health-checks every pooled chain connection
type PoolChecker interface {
	Check(ctx context.Context) []chain.NodeStatus
}

// PoolHealthJob periodically checks the chain pool. A check pings each node
// and refreshes its metadata when the runtime was upgraded.
type PoolHealthJob struct {
	pool     PoolChecker
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewPoolHealthJob creates a new pool health job
func NewPoolHealthJob(pool PoolChecker, interval time.Duration) *PoolHealthJob {
	if interval == 0 {
		interval = 30 * time.Second
	}
	return &PoolHealthJob{
		pool:     pool,
		interval: interval,
		timeout:  interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the job
func (j *PoolHealthJob) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	slog.Info("pool health job started", slog.Duration("interval", j.interval))
}

// Stop gracefully stops the job and waits for an in-progress check
func (j *PoolHealthJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	slog.Info("pool health job stopped")
}

func (j *PoolHealthJob) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
			j.RunOnce(ctx)
			cancel()
		case <-j.stopCh:
			return
		}
	}
}

// RunOnce checks the pool once and returns the number of healthy nodes.
// Busy nodes count as neither healthy nor unhealthy.
func (j *PoolHealthJob) RunOnce(ctx context.Context) int {
	statuses := j.pool.Check(ctx)

	healthy, busy := 0, 0
	for _, s := range statuses {
		switch {
		case s.Healthy:
			healthy++
		case s.Busy:
			busy++
		default:
			slog.Warn("chain node unhealthy",
				slog.Int("index", s.Index),
				slog.String("endpoint", s.Endpoint),
				slog.String("error", s.Error))
		}
	}

	if busy > 0 {
		slog.Debug("pool busy, health check skipped", slog.Int("nodes", busy))
	}
	if healthy == 0 && busy < len(statuses) {
		slog.Error("no healthy chain nodes", slog.Int("nodes", len(statuses)))
	}
	return healthy
}

// IsRunning returns whether the job is running
func (j *PoolHealthJob) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}
