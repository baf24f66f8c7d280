package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/nxtprof/nxtprof/pkg/cli/config"
	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/usecase"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdSync runs the daily sheet sync once and exits. Intended for cron or
// manual recovery when the in-process scheduler is not running.
func cmdSync() *cli.Command {
	var dateStr string
	var repoCfg config.Repository
	var sheetsCfg config.Sheets
	var scheduleCfg config.Schedule
	var archiveCfg config.Archive

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Target date (YYYY-MM-DD), defaults to today",
			Sources:     cli.EnvVars("NXTPROF_SYNC_DATE"),
			Destination: &dateStr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)
	flags = append(flags, scheduleCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Run the Google Sheets sync once and exit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !sheetsCfg.IsConfigured() {
				return goerr.New("sheets configuration is required for sync")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			loc := time.UTC
			if scheduleCfg.IsConfigured() {
				schedule, err := scheduleCfg.Configure()
				if err != nil {
					return goerr.Wrap(err, "failed to load schedule config")
				}
				loc = schedule.Location
			}

			sheetsSvc, err := sheetsCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize sheets service")
			}

			ucOpts := []usecase.Option{
				usecase.WithLocation(loc),
				usecase.WithSheets(sheetsSvc, sheetsCfg.AttendanceSheetID(), sheetsCfg.LearningPointsSheetID()),
			}

			archiveSvc, err := archiveCfg.Configure(ctx, loc)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize archive service")
			}
			if archiveSvc != nil {
				ucOpts = append(ucOpts, usecase.WithArchive(archiveSvc))
				defer func() {
					if err := archiveSvc.Close(); err != nil {
						logging.Default().Error("failed to close archive service", "error", err.Error())
					}
				}()
			}

			uc := usecase.New(repo, ucOpts...)

			date := uc.Today()
			if dateStr != "" {
				date, err = types.ParseSessionDate(dateStr)
				if err != nil {
					return goerr.Wrap(err, "invalid date")
				}
			}

			ctx = auth.ContextWithToken(ctx, &auth.Token{Sub: "sync-cli", Name: "Sync CLI", Admin: true})

			result, err := uc.SyncToday(ctx, date)
			if err != nil {
				return goerr.Wrap(err, "sync failed", goerr.V("date", date))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to encode sync result")
			}
			return nil
		},
	}
}
