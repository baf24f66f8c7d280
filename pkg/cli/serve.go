package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/nxtprof/nxtprof/pkg/cli/config"
	controller "github.com/nxtprof/nxtprof/pkg/controller/http"
	"github.com/nxtprof/nxtprof/pkg/domain/model/auth"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/service/summary"
	"github.com/nxtprof/nxtprof/pkg/service/worker"
	"github.com/nxtprof/nxtprof/pkg/usecase"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// schedulerDriver adapts the usecase layer to the scheduler worker. The
// worker has no HTTP request behind it, so every call runs under a system
// administrator token.
type schedulerDriver struct {
	uc *usecase.UseCases
}

func (d *schedulerDriver) systemCtx(ctx context.Context) context.Context {
	return auth.ContextWithToken(ctx, &auth.Token{Sub: "scheduler", Name: "Session Scheduler", Admin: true})
}

// tolerateRedundantFire downgrades precondition errors to a logged no-op.
// Scheduled triggers can fire more than once; a duplicate or out-of-order
// firing must never look like a failure.
func tolerateRedundantFire(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrSessionNotActive),
		errors.Is(err, usecase.ErrSessionEnded):
		logging.Default().Info("Redundant scheduled trigger ignored", "reason", err.Error())
		return nil
	default:
		return err
	}
}

func (d *schedulerDriver) ScheduleSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate, scheduledTime time.Time) error {
	return tolerateRedundantFire(d.uc.ScheduleSession(d.systemCtx(ctx), sessionType, date, scheduledTime))
}

func (d *schedulerDriver) ActivateSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error {
	return tolerateRedundantFire(d.uc.ActivateSession(d.systemCtx(ctx), sessionType, date))
}

func (d *schedulerDriver) EndSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error {
	return tolerateRedundantFire(d.uc.EndSession(d.systemCtx(ctx), sessionType, date))
}

func (d *schedulerDriver) SyncToday(ctx context.Context, date types.SessionDate) error {
	result, err := d.uc.SyncToday(d.systemCtx(ctx), date)
	if err != nil {
		return err
	}
	logging.Default().Info("Daily sync completed", "date", date, "result", result)
	return nil
}

func cmdServe(version string) *cli.Command {
	var addr string
	var repoCfg config.Repository
	var sheetsCfg config.Sheets
	var scheduleCfg config.Schedule
	var geminiCfg config.Gemini
	var sentryCfg config.Sentry
	var archiveCfg config.Archive
	var authCfg config.Auth

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("NXTPROF_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)
	flags = append(flags, scheduleCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer flush()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			schedule := worker.Schedule{}
			if scheduleCfg.IsConfigured() {
				schedule, err = scheduleCfg.Configure()
				if err != nil {
					return goerr.Wrap(err, "failed to load schedule config")
				}
			}

			loc := schedule.Location
			if loc == nil {
				loc = time.UTC
			}

			ucOpts := []usecase.Option{
				usecase.WithLocation(loc),
			}

			sheetsSvc, err := sheetsCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize sheets service")
			}
			if sheetsSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSheets(sheetsSvc, sheetsCfg.AttendanceSheetID(), sheetsCfg.LearningPointsSheetID()))
				logging.Default().Info("Google Sheets sync enabled")
			} else {
				logging.Default().Info("Google Sheets not configured, sync endpoints will be unavailable")
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
				logging.Default().Info("Attendance archive enabled")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gemini client")
			}
			if llmClient != nil {
				summarySvc, err := summary.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize summary service")
				}
				ucOpts = append(ucOpts, usecase.WithSummary(summarySvc))
				logging.Default().Info("Feedback summarization enabled")
			} else {
				logging.Default().Info("Gemini not configured, feedback is stored without summaries")
			}

			uc := usecase.New(repo, ucOpts...)

			var scheduler *worker.SessionScheduler
			if scheduleCfg.IsConfigured() {
				scheduler = worker.NewSessionScheduler(&schedulerDriver{uc: uc}, schedule)
				if err := scheduler.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start session scheduler")
				}
				logging.Default().Info("Session scheduler started", "timezone", loc.String())
			} else {
				logging.Default().Info("Schedule config not provided, sessions are managed via the API only")
			}

			verifier := authCfg.Configure()
			if verifier == nil {
				logging.Default().Warn("Running in no-authn mode (development only)")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           controller.New(uc, controller.WithVerifier(verifier)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if scheduler != nil {
					scheduler.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
