package usecase

import (
	"time"

	"github.com/nxtprof/nxtprof/pkg/domain/interfaces"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/service/archive"
	"github.com/nxtprof/nxtprof/pkg/service/sheets"
	"github.com/nxtprof/nxtprof/pkg/service/summary"
)

type UseCases struct {
	repo interfaces.Repository

	sheetsService  sheets.Service
	archiveService archive.Service
	summaryService summary.Service

	attendanceSheetID     string
	learningPointsSheetID string

	loc *time.Location
	now func() time.Time
}

type Option func(*UseCases)

// WithSheets wires the spreadsheet gateway and the two spreadsheet ids
func WithSheets(svc sheets.Service, attendanceSheetID, learningPointsSheetID string) Option {
	return func(uc *UseCases) {
		uc.sheetsService = svc
		uc.attendanceSheetID = attendanceSheetID
		uc.learningPointsSheetID = learningPointsSheetID
	}
}

// WithArchive wires the Cloud Storage snapshot writer
func WithArchive(svc archive.Service) Option {
	return func(uc *UseCases) {
		uc.archiveService = svc
	}
}

// WithSummary wires the AI feedback summarizer
func WithSummary(svc summary.Service) Option {
	return func(uc *UseCases) {
		uc.summaryService = svc
	}
}

// WithLocation sets the organization timezone used for date keys and
// spreadsheet time formatting
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.loc = loc
	}
}

// WithClock overrides the time source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// Today returns the current date key in the organization timezone
func (uc *UseCases) Today() types.SessionDate {
	return types.NewSessionDate(uc.now(), uc.loc)
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		loc:  time.UTC,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
