package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// TodaySyncResult aggregates the daily sync's per-engine outcomes
type TodaySyncResult struct {
	Standups       *SyncResult            `json:"standups"`
	LearningHours  *SyncResult            `json:"learning_hours"`
	LearningPoints map[string]*SyncResult `json:"learning_points"`
}

// SyncToday runs the full daily sync: both attendance tabs for the given
// date, plus every ended learning session whose points are still unsynced.
// The two attendance syncs run concurrently; they write to different tabs.
func (uc *UseCases) SyncToday(ctx context.Context, date types.SessionDate) (*TodaySyncResult, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	result := &TodaySyncResult{
		LearningPoints: make(map[string]*SyncResult),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		r, err := uc.SyncAttendance(egCtx, types.SessionTypeStandup, date)
		if err != nil {
			return goerr.Wrap(err, "standup attendance sync failed")
		}
		result.Standups = r
		return nil
	})
	eg.Go(func() error {
		r, err := uc.SyncAttendance(egCtx, types.SessionTypeLearningHour, date)
		if err != nil {
			return goerr.Wrap(err, "learning hour attendance sync failed")
		}
		result.LearningHours = r
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Learning point syncs run sequentially: each touches the same
	// spreadsheet and flips its own session's synced flag.
	unsynced, err := uc.repo.Session().ListUnsynced(ctx, types.SessionTypeLearningHour)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list unsynced learning sessions")
	}
	for _, session := range unsynced {
		r, err := uc.SyncLearningPoints(ctx, session.Date)
		if err != nil {
			return nil, goerr.Wrap(err, "learning points sync failed",
				goerr.V("date", string(session.Date)))
		}
		result.LearningPoints[session.Date.String()] = r
	}

	logging.From(ctx).Info("Daily sync completed",
		"date", string(date), "learningSessions", len(unsynced))
	return result, nil
}
