package cli

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/repository/memory"
	"github.com/nxtprof/nxtprof/pkg/usecase"
)

func TestSchedulerDriverToleratesRedundantFires(t *testing.T) {
	uc := usecase.New(memory.New())
	driver := &schedulerDriver{uc: uc}
	ctx := context.Background()
	date := types.SessionDate("2025-04-07")

	// Ending or activating a session that was never scheduled must not
	// surface an error to the trigger loop.
	gt.NoError(t, driver.EndSession(ctx, types.SessionTypeStandup, date))
	gt.NoError(t, driver.ActivateSession(ctx, types.SessionTypeStandup, date))

	// A normal day: schedule, activate, end, then duplicate fires.
	start := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)
	gt.NoError(t, driver.ScheduleSession(ctx, types.SessionTypeStandup, date, start)).Required()
	gt.NoError(t, driver.ScheduleSession(ctx, types.SessionTypeStandup, date, start))
	gt.NoError(t, driver.ActivateSession(ctx, types.SessionTypeStandup, date)).Required()
	gt.NoError(t, driver.EndSession(ctx, types.SessionTypeStandup, date)).Required()
	gt.NoError(t, driver.ActivateSession(ctx, types.SessionTypeStandup, date))
	gt.NoError(t, driver.EndSession(ctx, types.SessionTypeStandup, date))

	session, err := uc.GetSession(driver.systemCtx(ctx), types.SessionTypeStandup, date)
	gt.NoError(t, err).Required()
	gt.Value(t, session.Status).Equal(types.SessionStatusEnded)
}

func TestTolerateRedundantFirePassesOtherErrors(t *testing.T) {
	gt.NoError(t, tolerateRedundantFire(nil))

	wrapped := goerr.Wrap(usecase.ErrSessionNotActive, "not active")
	gt.NoError(t, tolerateRedundantFire(wrapped))

	other := goerr.New("sheet API unavailable")
	gt.Error(t, tolerateRedundantFire(other))
}
