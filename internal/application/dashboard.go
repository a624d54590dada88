package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/nkaddour/ttc/internal/ports"
)

type Source string

const (
	SourceAccounts    Source = "accounts"
	SourceProxies     Source = "proxies"
	SourceSchedules   Source = "schedules"
	SourceEngagements Source = "engagements"
)

// Sources in display order.
var Sources = []Source{SourceAccounts, SourceProxies, SourceSchedules, SourceEngagements}

// UpcomingLimit caps the "next up" schedule list on the dashboard.
const UpcomingLimit = 5

// Snapshot is one complete aggregation round. Each round fully replaces
// the previous one; rounds are never merged, so the view always shows a
// consistent set of counts.
type Snapshot struct {
	TakenAt     time.Time
	Counts      map[Source]int
	Unavailable map[Source]bool
	Upcoming    []UpcomingSchedule
}

// UpcomingSchedule is a future-dated schedule entry for "next up" display.
type UpcomingSchedule struct {
	ID      int64
	Caption string
	At      time.Time
	Status  string
}

// Count returns the display value for a source: its count, or zero when
// the source was unavailable this round.
func (s Snapshot) Count(source Source) int { return s.Counts[source] }

// DashboardService assembles the multi-source dashboard view.
type DashboardService struct {
	gateway ports.DashboardGateway
	clock   ports.Clock
	log     logrus.FieldLogger
}

func NewDashboardService(gateway ports.DashboardGateway, clock ports.Clock, log logrus.FieldLogger) *DashboardService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &DashboardService{gateway: gateway, clock: clock, log: log}
}

// Refresh fetches all sources concurrently and joins the results. A
// failing source is tombstoned and logged, never fatal: one optional
// backend feature being down must not blank the whole dashboard. The
// round settles only after every source has either succeeded or been
// tombstoned.
func (s *DashboardService) Refresh(ctx context.Context) Snapshot {
	snapshot := Snapshot{
		TakenAt:     s.clock.Now(),
		Counts:      make(map[Source]int, len(Sources)),
		Unavailable: make(map[Source]bool),
	}

	var mu sync.Mutex
	var schedules []domain.Schedule

	record := func(source Source, count int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			s.log.WithError(err).WithField("source", source).Warn("dashboard source unavailable")
			snapshot.Counts[source] = 0
			snapshot.Unavailable[source] = true
			return
		}
		snapshot.Counts[source] = count
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.gateway.ListAccounts(ctx)
		record(SourceAccounts, len(accounts), err)
		return nil
	})
	g.Go(func() error {
		proxies, err := s.gateway.ListProxies(ctx)
		record(SourceProxies, len(proxies), err)
		return nil
	})
	g.Go(func() error {
		fetched, err := s.gateway.ListSchedules(ctx)
		record(SourceSchedules, len(fetched), err)
		if err == nil {
			mu.Lock()
			schedules = fetched
			mu.Unlock()
		}
		return nil
	})
	g.Go(func() error {
		engagements, err := s.gateway.ListEngagements(ctx)
		record(SourceEngagements, len(engagements), err)
		return nil
	})
	_ = g.Wait()

	snapshot.Upcoming = upcomingSchedules(schedules, s.clock.Now(), UpcomingLimit)
	return snapshot
}

// upcomingSchedules keeps future-dated entries sorted soonest-first,
// capped to max. Past-dated and malformed timestamps are skipped.
func upcomingSchedules(schedules []domain.Schedule, now time.Time, max int) []UpcomingSchedule {
	upcoming := make([]UpcomingSchedule, 0, len(schedules))
	for _, schedule := range schedules {
		at, ok := schedule.Time()
		if !ok || !at.After(now) {
			continue
		}
		status := schedule.Status
		if status == "" {
			status = domain.ScheduleStatusPending
		}
		upcoming = append(upcoming, UpcomingSchedule{
			ID:      schedule.ID,
			Caption: schedule.Caption,
			At:      at,
			Status:  status,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].At.Before(upcoming[j].At) })
	if len(upcoming) > max {
		upcoming = upcoming[:max]
	}
	return upcoming
}

// Poller re-runs Refresh on a fixed interval until stopped.
type Poller struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartPolling refreshes immediately, then every interval, delivering
// each settled round. Stop cancels in-flight work and waits for the
// polling goroutine to exit, so no round is delivered after Stop
// returns — a late-resolving refresh cannot mutate a torn-down view.
func (s *DashboardService) StartPolling(ctx context.Context, interval time.Duration, deliver func(Snapshot)) *Poller {
	ctx, cancel := context.WithCancel(ctx)
	poller := &Poller{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(poller.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			snapshot := s.Refresh(ctx)
			if ctx.Err() != nil {
				return
			}
			deliver(snapshot)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return poller
}

// Stop tears the poller down. Idempotent; blocks until the polling
// goroutine has exited.
func (p *Poller) Stop() {
	p.stopOnce.Do(p.cancel)
	<-p.done
}
