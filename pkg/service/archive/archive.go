// Package archive writes CSV snapshots of synced attendance to Cloud Storage.
package archive

import (
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/utils/safe"
)

// Service stores attendance snapshots. Uploads are best-effort from the
// caller's point of view: a failed archive never fails the sync itself.
type Service interface {
	SaveAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, records []*model.AttendanceRecord) error
	Close() error
}

type client struct {
	gcs    *storage.Client
	bucket string
	loc    *time.Location
}

func New(ctx context.Context, bucket string, loc *time.Location) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket name is required")
	}

	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &client{gcs: gcs, bucket: bucket, loc: loc}, nil
}

var csvHeader = []string{
	"session_id", "time", "session_type", "employee_id", "name", "email", "status", "reason",
}

func (c *client) SaveAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, records []*model.AttendanceRecord) error {
	objName := fmt.Sprintf("attendance/%s/%s.csv", sessionType, date)

	w := c.gcs.Bucket(c.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = "text/csv"

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to write csv header", goerr.V("object", objName))
	}
	for _, rec := range records {
		row := rec.SheetRow(sessionType, c.loc)
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		if err := cw.Write(cells); err != nil {
			safe.Close(ctx, w)
			return goerr.Wrap(err, "failed to write csv row", goerr.V("object", objName))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to flush csv", goerr.V("object", objName))
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize archive object",
			goerr.V("bucket", c.bucket), goerr.V("object", objName))
	}

	return nil
}

func (c *client) Close() error {
	if err := c.gcs.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
