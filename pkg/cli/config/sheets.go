package config

import (
	"context"

	"github.com/nxtprof/nxtprof/pkg/service/sheets"
	"github.com/urfave/cli/v3"
)

// Sheets holds CLI flags for the Google Sheets integration
type Sheets struct {
	credentialsFile  string
	credentialsJSON  string
	attendanceID     string
	learningPointsID string
}

// Flags returns CLI flags for Sheets configuration
func (s *Sheets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sheets-credentials",
			Usage:       "Path to the service account credential JSON for Google Sheets",
			Sources:     cli.EnvVars("NXTPROF_SHEETS_CREDENTIALS"),
			Destination: &s.credentialsFile,
		},
		&cli.StringFlag{
			Name:        "sheets-credentials-json",
			Usage:       "Service account credential JSON content (takes precedence over the file path)",
			Sources:     cli.EnvVars("NXTPROF_SHEETS_CREDENTIALS_JSON"),
			Destination: &s.credentialsJSON,
		},
		&cli.StringFlag{
			Name:        "attendance-sheet-id",
			Usage:       "Spreadsheet ID of the shared attendance sheet",
			Sources:     cli.EnvVars("NXTPROF_ATTENDANCE_SHEET_ID"),
			Destination: &s.attendanceID,
		},
		&cli.StringFlag{
			Name:        "learning-points-sheet-id",
			Usage:       "Spreadsheet ID of the learning points sheet",
			Sources:     cli.EnvVars("NXTPROF_LEARNING_POINTS_SHEET_ID"),
			Destination: &s.learningPointsID,
		},
	}
}

// AttendanceSheetID returns the attendance spreadsheet id
func (s *Sheets) AttendanceSheetID() string {
	return s.attendanceID
}

// LearningPointsSheetID returns the learning points spreadsheet id
func (s *Sheets) LearningPointsSheetID() string {
	return s.learningPointsID
}

// IsConfigured reports whether the sheets integration can be enabled
func (s *Sheets) IsConfigured() bool {
	hasCredential := s.credentialsFile != "" || s.credentialsJSON != ""
	return hasCredential && (s.attendanceID != "" || s.learningPointsID != "")
}

// Configure creates the Sheets service. Returns nil when not configured;
// sync operations are then disabled. Inline credential JSON wins over the
// file path when both are given.
func (s *Sheets) Configure(ctx context.Context) (sheets.Service, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	if s.credentialsJSON != "" {
		return sheets.New(ctx, []byte(s.credentialsJSON))
	}
	return sheets.NewWithCredentialsFile(ctx, s.credentialsFile)
}
