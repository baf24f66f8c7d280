package worker

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

func testSchedule(t *testing.T) Schedule {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	gt.NoError(t, err).Required()

	return Schedule{
		Location: loc,
		Standups: TypeSchedule{
			ScheduleAt: ClockTime{Hour: 8, Minute: 0},
			StartAt:    ClockTime{Hour: 9, Minute: 0},
			EndAt:      ClockTime{Hour: 9, Minute: 30},
			SkipDays:   []time.Weekday{time.Sunday},
		},
		LearningHours: TypeSchedule{
			ScheduleAt: ClockTime{Hour: 8, Minute: 0},
			StartAt:    ClockTime{Hour: 17, Minute: 0},
			EndAt:      ClockTime{Hour: 18, Minute: 0},
			SkipDays:   []time.Weekday{time.Saturday, time.Sunday},
		},
		SyncAt: ClockTime{Hour: 21, Minute: 0},
	}
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("09:30")
	gt.NoError(t, err).Required()
	gt.V(t, ct.Hour).Equal(9)
	gt.V(t, ct.Minute).Equal(30)
	gt.V(t, ct.String()).Equal("09:30")

	_, err = ParseClockTime("25:00")
	gt.Error(t, err)
	_, err = ParseClockTime("bogus")
	gt.Error(t, err)
}

func TestNextEvent(t *testing.T) {
	sched := testSchedule(t)
	loc := sched.Location

	// 2025-04-07 is a Monday
	t.Run("mid-morning picks standup end", func(t *testing.T) {
		now := time.Date(2025, 4, 7, 9, 10, 0, 0, loc)
		ev, ok := nextEvent(sched, now)
		gt.B(t, ok).True()
		gt.V(t, ev.kind).Equal("end")
		gt.V(t, ev.sessionType).Equal(types.SessionTypeStandup)
		gt.V(t, ev.at).Equal(time.Date(2025, 4, 7, 9, 30, 0, 0, loc))
	})

	t.Run("evening picks daily sync", func(t *testing.T) {
		now := time.Date(2025, 4, 7, 18, 30, 0, 0, loc)
		ev, ok := nextEvent(sched, now)
		gt.B(t, ok).True()
		gt.V(t, ev.kind).Equal("sync")
		gt.V(t, ev.at).Equal(time.Date(2025, 4, 7, 21, 0, 0, 0, loc))
	})

	t.Run("after sync rolls to next day", func(t *testing.T) {
		now := time.Date(2025, 4, 7, 22, 0, 0, 0, loc)
		ev, ok := nextEvent(sched, now)
		gt.B(t, ok).True()
		gt.V(t, ev.kind).Equal("schedule")
		gt.V(t, ev.at).Equal(time.Date(2025, 4, 8, 8, 0, 0, 0, loc))
	})

	// 2025-04-12 is a Saturday: learning hours skip, standups run
	t.Run("saturday skips learning hours only", func(t *testing.T) {
		now := time.Date(2025, 4, 12, 10, 0, 0, 0, loc)
		ev, ok := nextEvent(sched, now)
		gt.B(t, ok).True()
		gt.V(t, ev.kind).Equal("sync")
	})

	// 2025-04-13 is a Sunday: both types skip, only sync remains
	t.Run("sunday skips both session types", func(t *testing.T) {
		now := time.Date(2025, 4, 13, 0, 30, 0, 0, loc)
		ev, ok := nextEvent(sched, now)
		gt.B(t, ok).True()
		gt.V(t, ev.kind).Equal("sync")
		gt.V(t, ev.at).Equal(time.Date(2025, 4, 13, 21, 0, 0, 0, loc))
	})
}

func TestNextEventCrossesSkipWeek(t *testing.T) {
	sched := testSchedule(t)
	loc := sched.Location

	// Just after Sunday's sync, the next event is Monday's schedule trigger
	now := time.Date(2025, 4, 13, 21, 30, 0, 0, loc)
	ev, ok := nextEvent(sched, now)
	gt.B(t, ok).True()
	gt.V(t, ev.kind).Equal("schedule")
	gt.V(t, ev.at).Equal(time.Date(2025, 4, 14, 8, 0, 0, 0, loc))
}
