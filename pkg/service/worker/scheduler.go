// Package worker runs the in-process session scheduler.
package worker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/utils/async"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
)

// Driver is the set of operations the scheduler fires. Satisfied by the
// usecase layer.
type Driver interface {
	ScheduleSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate, scheduledTime time.Time) error
	ActivateSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error
	EndSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error
	SyncToday(ctx context.Context, date types.SessionDate) error
}

// ClockTime is a time of day in the organization timezone
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24-hour)
func ParseClockTime(s string) (ClockTime, error) {
	var ct ClockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &ct.Hour, &ct.Minute); err != nil {
		return ClockTime{}, goerr.Wrap(err, "invalid clock time", goerr.V("value", s))
	}
	if ct.Hour < 0 || ct.Hour > 23 || ct.Minute < 0 || ct.Minute > 59 {
		return ClockTime{}, goerr.New("clock time out of range", goerr.V("value", s))
	}
	return ct, nil
}

func (ct ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.Hour, ct.Minute)
}

// at anchors the clock time on the given calendar day
func (ct ClockTime) at(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, ct.Hour, ct.Minute, 0, 0, loc)
}

// TypeSchedule is the daily timetable for one session type
type TypeSchedule struct {
	ScheduleAt ClockTime
	StartAt    ClockTime
	EndAt      ClockTime
	SkipDays   []time.Weekday
}

func (s TypeSchedule) skips(day time.Weekday) bool {
	for _, d := range s.SkipDays {
		if d == day {
			return true
		}
	}
	return false
}

// Schedule is the full organization timetable
type Schedule struct {
	Location      *time.Location
	Standups      TypeSchedule
	LearningHours TypeSchedule
	SyncAt        ClockTime
}

func (s Schedule) forType(t types.SessionType) TypeSchedule {
	if t == types.SessionTypeLearningHour {
		return s.LearningHours
	}
	return s.Standups
}

// SessionScheduler creates, activates, and ends the day's sessions at their
// configured clock times, and kicks the daily sheet sync.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type SessionScheduler struct {
	driver   Driver
	schedule Schedule
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionScheduler creates a scheduler for the given timetable
func NewSessionScheduler(driver Driver, schedule Schedule) *SessionScheduler {
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}
	return &SessionScheduler{
		driver:   driver,
		schedule: schedule,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the trigger loop in a background goroutine. Does not block
// server startup.
func (w *SessionScheduler) Start(ctx context.Context) error {
	logging.Default().Info("Session scheduler starting",
		"timezone", w.schedule.Location.String())

	go w.run(ctx)

	return nil
}

// Stop signals the scheduler to stop and waits for completion
func (w *SessionScheduler) Stop() {
	logging.Default().Info("Session scheduler stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Session scheduler stopped")
}

// event is one firing of the timetable
type event struct {
	at          time.Time
	kind        string
	sessionType types.SessionType
}

func (w *SessionScheduler) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		next, ok := nextEvent(w.schedule, w.now())
		if !ok {
			logging.Default().Warn("Session scheduler has no configured events, exiting")
			return
		}

		timer := time.NewTimer(time.Until(next.at))

		select {
		case <-timer.C:
			if err := w.fire(ctx, next); err != nil {
				// Log error but continue worker
				logging.Default().Error("Scheduled trigger failed",
					"kind", next.kind,
					"sessionType", string(next.sessionType),
					"error", err.Error())
			}

		case <-w.stopCh:
			timer.Stop()
			logging.Default().Info("Session scheduler received stop signal")
			return

		case <-ctx.Done():
			timer.Stop()
			logging.Default().Info("Session scheduler context cancelled")
			return
		}
	}
}

func (w *SessionScheduler) fire(ctx context.Context, ev event) error {
	now := w.now().In(w.schedule.Location)
	date := types.NewSessionDate(now, w.schedule.Location)

	logging.Default().Info("Firing scheduled trigger",
		"kind", ev.kind,
		"sessionType", string(ev.sessionType),
		"date", string(date))

	switch ev.kind {
	case "schedule":
		start := w.schedule.forType(ev.sessionType).StartAt.at(now, w.schedule.Location)
		return w.driver.ScheduleSession(ctx, ev.sessionType, date, start)
	case "start":
		return w.driver.ActivateSession(ctx, ev.sessionType, date)
	case "end":
		return w.driver.EndSession(ctx, ev.sessionType, date)
	case "sync":
		// Sheet I/O can be slow. Run it off the trigger loop so the next
		// timetable event is never delayed.
		async.Dispatch(ctx, func(ctx context.Context) error {
			return w.driver.SyncToday(ctx, date)
		})
		return nil
	default:
		return goerr.New("unknown trigger kind", goerr.V("kind", ev.kind))
	}
}

// nextEvent returns the earliest timetable event strictly after now, looking
// ahead up to a week to step over skip days.
func nextEvent(schedule Schedule, now time.Time) (event, bool) {
	loc := schedule.Location
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	for offset := 0; offset < 8; offset++ {
		day := now.AddDate(0, 0, offset)

		var candidates []event
		for _, sessionType := range types.AllSessionTypes() {
			ts := schedule.forType(sessionType)
			if ts.skips(day.Weekday()) {
				continue
			}
			candidates = append(candidates,
				event{at: ts.ScheduleAt.at(day, loc), kind: "schedule", sessionType: sessionType},
				event{at: ts.StartAt.at(day, loc), kind: "start", sessionType: sessionType},
				event{at: ts.EndAt.at(day, loc), kind: "end", sessionType: sessionType},
			)
		}
		candidates = append(candidates, event{at: schedule.SyncAt.at(day, loc), kind: "sync"})

		sort.Slice(candidates, func(i, j int) bool { return candidates[i].at.Before(candidates[j].at) })
		for _, ev := range candidates {
			if ev.at.After(now) {
				return ev, true
			}
		}
	}

	return event{}, false
}
