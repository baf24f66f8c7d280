package config

import (
	"context"
	"time"

	"github.com/nxtprof/nxtprof/pkg/service/archive"
	"github.com/urfave/cli/v3"
)

// Archive holds CLI flags for the Cloud Storage attendance archive
type Archive struct {
	bucket string
}

// Flags returns CLI flags for archive configuration
func (a *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket for attendance CSV snapshots (disabled when empty)",
			Sources:     cli.EnvVars("NXTPROF_ARCHIVE_BUCKET"),
			Destination: &a.bucket,
		},
	}
}

// Configure creates the archive service. Returns nil when no bucket is
// configured.
func (a *Archive) Configure(ctx context.Context, loc *time.Location) (archive.Service, error) {
	if a.bucket == "" {
		return nil, nil
	}
	return archive.New(ctx, a.bucket, loc)
}
