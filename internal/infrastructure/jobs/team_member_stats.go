package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"team-management.backend/internal/domain/entities"
	"team-management.backend/pkg/logger"
	"team-management.backend/pkg/metrics"
)

const defaultStatsInterval = time.Minute

type roleCounter interface {
	CountByRole(ctx context.Context) (map[entities.Role]int64, error)
}

// TeamMemberStatsJob periodically publishes member counts per role
type TeamMemberStatsJob struct {
	counter  roleCounter
	metrics  *metrics.Metrics
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewTeamMemberStatsJob(counter roleCounter, m *metrics.Metrics, interval time.Duration) *TeamMemberStatsJob {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	return &TeamMemberStatsJob{
		counter:  counter,
		metrics:  m,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start refreshes once, then on every tick until ctx is cancelled or Stop is called
func (j *TeamMemberStatsJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting team member stats job", zap.Duration("interval", j.interval))

	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "Team member stats job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Team member stats job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

// Stop ends the loop; calling it more than once is a no-op
func (j *TeamMemberStatsJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *TeamMemberStatsJob) refresh(ctx context.Context) {
	counts, err := j.counter.CountByRole(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to count team members by role", zap.Error(err))
		return
	}

	values := make(map[string]int64, len(counts))
	for role, n := range counts {
		values[string(role)] = n
	}
	j.metrics.SetRoleCounts(values)
}
