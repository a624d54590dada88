package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkaddour/ttc/internal/domain"
)

type fakeDashboardGateway struct {
	accountsFn    func(ctx context.Context) ([]domain.Account, error)
	proxiesFn     func(ctx context.Context) ([]domain.Proxy, error)
	schedulesFn   func(ctx context.Context) ([]domain.Schedule, error)
	engagementsFn func(ctx context.Context) ([]domain.Engagement, error)
}

func (f *fakeDashboardGateway) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return f.accountsFn(ctx)
}

func (f *fakeDashboardGateway) ListProxies(ctx context.Context) ([]domain.Proxy, error) {
	return f.proxiesFn(ctx)
}

func (f *fakeDashboardGateway) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	return f.schedulesFn(ctx)
}

func (f *fakeDashboardGateway) ListEngagements(ctx context.Context) ([]domain.Engagement, error) {
	return f.engagementsFn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(nullWriter{})
	return log
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func schedulesAt(now time.Time, offsets ...time.Duration) []domain.Schedule {
	schedules := make([]domain.Schedule, 0, len(offsets))
	for i, offset := range offsets {
		schedules = append(schedules, domain.Schedule{
			ID:           int64(i + 1),
			Caption:      fmt.Sprintf("clip %d", i+1),
			ScheduleTime: now.Add(offset).Format(time.RFC3339),
			Status:       domain.ScheduleStatusPending,
		})
	}
	return schedules
}

func TestRefreshCountsAllSources(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gateway := &fakeDashboardGateway{
		accountsFn: func(ctx context.Context) ([]domain.Account, error) {
			return make([]domain.Account, 3), nil
		},
		proxiesFn: func(ctx context.Context) ([]domain.Proxy, error) {
			return make([]domain.Proxy, 2), nil
		},
		schedulesFn: func(ctx context.Context) ([]domain.Schedule, error) {
			return schedulesAt(now, time.Hour, 2*time.Hour, 3*time.Hour, 4*time.Hour, 5*time.Hour), nil
		},
		engagementsFn: func(ctx context.Context) ([]domain.Engagement, error) {
			return make([]domain.Engagement, 9), nil
		},
	}

	service := NewDashboardService(gateway, fixedClock{now}, quietLogger())
	snapshot := service.Refresh(context.Background())

	assert.Equal(t, 3, snapshot.Count(SourceAccounts))
	assert.Equal(t, 2, snapshot.Count(SourceProxies))
	assert.Equal(t, 5, snapshot.Count(SourceSchedules))
	assert.Equal(t, 9, snapshot.Count(SourceEngagements))
	assert.Empty(t, snapshot.Unavailable)
	assert.Equal(t, now, snapshot.TakenAt)
	assert.Len(t, snapshot.Upcoming, 5)
}

func TestRefreshTombstonesFailingSource(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gateway := &fakeDashboardGateway{
		accountsFn: func(ctx context.Context) ([]domain.Account, error) {
			return make([]domain.Account, 3), nil
		},
		proxiesFn: func(ctx context.Context) ([]domain.Proxy, error) {
			return make([]domain.Proxy, 2), nil
		},
		schedulesFn: func(ctx context.Context) ([]domain.Schedule, error) {
			return schedulesAt(now, time.Hour, 2*time.Hour, 3*time.Hour, 4*time.Hour, 5*time.Hour), nil
		},
		engagementsFn: func(ctx context.Context) ([]domain.Engagement, error) {
			return nil, errors.New("engagements endpoint down")
		},
	}

	service := NewDashboardService(gateway, fixedClock{now}, quietLogger())
	snapshot := service.Refresh(context.Background())

	assert.Equal(t, 3, snapshot.Count(SourceAccounts))
	assert.Equal(t, 2, snapshot.Count(SourceProxies))
	assert.Equal(t, 5, snapshot.Count(SourceSchedules))
	assert.Equal(t, 0, snapshot.Count(SourceEngagements))
	assert.True(t, snapshot.Unavailable[SourceEngagements])
	assert.False(t, snapshot.Unavailable[SourceAccounts])
	assert.Len(t, snapshot.Upcoming, 5, "other sources still render when one fails")
}

func TestRefreshAllSourcesDown(t *testing.T) {
	t.Parallel()

	down := errors.New("backend unreachable")
	gateway := &fakeDashboardGateway{
		accountsFn:    func(ctx context.Context) ([]domain.Account, error) { return nil, down },
		proxiesFn:     func(ctx context.Context) ([]domain.Proxy, error) { return nil, down },
		schedulesFn:   func(ctx context.Context) ([]domain.Schedule, error) { return nil, down },
		engagementsFn: func(ctx context.Context) ([]domain.Engagement, error) { return nil, down },
	}

	service := NewDashboardService(gateway, nil, quietLogger())
	snapshot := service.Refresh(context.Background())

	for _, source := range Sources {
		assert.Equal(t, 0, snapshot.Count(source))
		assert.True(t, snapshot.Unavailable[source])
	}
	assert.Empty(t, snapshot.Upcoming)
}

func TestUpcomingSchedulesSortCapAndSkip(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	schedules := []domain.Schedule{
		{ID: 1, Caption: "later", ScheduleTime: now.Add(3 * time.Hour).Format(time.RFC3339)},
		{ID: 2, Caption: "past", ScheduleTime: now.Add(-time.Hour).Format(time.RFC3339)},
		{ID: 3, Caption: "soon", ScheduleTime: now.Add(time.Hour).Format(time.RFC3339)},
		{ID: 4, Caption: "garbage", ScheduleTime: "not-a-timestamp"},
		{ID: 5, Caption: "naive", ScheduleTime: now.Add(2 * time.Hour).In(time.Local).Format("2006-01-02T15:04:05")},
		{ID: 6, Caption: "exactly now", ScheduleTime: now.Format(time.RFC3339)},
	}

	upcoming := upcomingSchedules(schedules, now, 5)

	require.Len(t, upcoming, 3)
	assert.Equal(t, int64(3), upcoming[0].ID)
	assert.Equal(t, int64(5), upcoming[1].ID)
	assert.Equal(t, int64(1), upcoming[2].ID)
	assert.Equal(t, domain.ScheduleStatusPending, upcoming[0].Status)

	capped := upcomingSchedules(schedulesAt(now,
		time.Hour, 2*time.Hour, 3*time.Hour, 4*time.Hour, 5*time.Hour, 6*time.Hour, 7*time.Hour), now, UpcomingLimit)
	require.Len(t, capped, UpcomingLimit)
	assert.Equal(t, "clip 1", capped[0].Caption)
	assert.Equal(t, "clip 5", capped[4].Caption)
}

func TestPollerDeliversRoundsUntilStopped(t *testing.T) {
	t.Parallel()

	gateway := &fakeDashboardGateway{
		accountsFn: func(ctx context.Context) ([]domain.Account, error) {
			return make([]domain.Account, 1), nil
		},
		proxiesFn:     func(ctx context.Context) ([]domain.Proxy, error) { return nil, nil },
		schedulesFn:   func(ctx context.Context) ([]domain.Schedule, error) { return nil, nil },
		engagementsFn: func(ctx context.Context) ([]domain.Engagement, error) { return nil, nil },
	}

	service := NewDashboardService(gateway, nil, quietLogger())

	rounds := make(chan Snapshot, 16)
	poller := service.StartPolling(context.Background(), 5*time.Millisecond, func(s Snapshot) {
		rounds <- s
	})

	// First round is delivered immediately, before the first tick.
	select {
	case snapshot := <-rounds:
		assert.Equal(t, 1, snapshot.Count(SourceAccounts))
	case <-time.After(time.Second):
		t.Fatal("no initial round delivered")
	}

	select {
	case <-rounds:
	case <-time.After(time.Second):
		t.Fatal("no periodic round delivered")
	}

	poller.Stop()
}

func TestPollerStopPreventsLateDelivery(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var once sync.Once
	gateway := &fakeDashboardGateway{
		accountsFn: func(ctx context.Context) ([]domain.Account, error) {
			once.Do(func() { close(release) })
			<-ctx.Done()
			return nil, ctx.Err()
		},
		proxiesFn:     func(ctx context.Context) ([]domain.Proxy, error) { return nil, nil },
		schedulesFn:   func(ctx context.Context) ([]domain.Schedule, error) { return nil, nil },
		engagementsFn: func(ctx context.Context) ([]domain.Engagement, error) { return nil, nil },
	}

	service := NewDashboardService(gateway, nil, quietLogger())

	var mu sync.Mutex
	delivered := 0
	poller := service.StartPolling(context.Background(), time.Millisecond, func(Snapshot) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	// The first refresh is blocked inside the gateway; stopping must
	// cancel it and return without it ever being delivered.
	<-release
	poller.Stop()
	poller.Stop() // idempotent

	mu.Lock()
	assert.Equal(t, 0, delivered)
	mu.Unlock()
}
