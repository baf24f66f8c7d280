package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/service/worker"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Schedule holds CLI flags and the TOML timetable for the session scheduler
type Schedule struct {
	configPath string
}

// scheduleFile is the TOML shape of the timetable
type scheduleFile struct {
	Timezone      string           `toml:"timezone"`
	SyncAt        string           `toml:"sync_at"`
	Standups      typeScheduleFile `toml:"standups"`
	LearningHours typeScheduleFile `toml:"learning_hours"`
}

type typeScheduleFile struct {
	ScheduleAt string   `toml:"schedule_at"`
	StartAt    string   `toml:"start_at"`
	EndAt      string   `toml:"end_at"`
	SkipDays   []string `toml:"skip_days"`
}

// Flags returns CLI flags for schedule configuration
func (s *Schedule) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "schedule-config",
			Usage:       "Path to the TOML session timetable",
			Sources:     cli.EnvVars("NXTPROF_SCHEDULE_CONFIG"),
			Destination: &s.configPath,
		},
	}
}

// IsConfigured reports whether a timetable file was given
func (s *Schedule) IsConfigured() bool {
	return s.configPath != ""
}

// Configure loads and validates the timetable. The scheduler worker is only
// started when a timetable is configured.
func (s *Schedule) Configure() (worker.Schedule, error) {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return worker.Schedule{}, goerr.Wrap(err, "failed to read schedule config",
			goerr.V("path", s.configPath))
	}
	return parseSchedule(data)
}

func parseSchedule(data []byte) (worker.Schedule, error) {
	var file scheduleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return worker.Schedule{}, goerr.Wrap(err, "failed to parse schedule config")
	}

	tz := file.Timezone
	if tz == "" {
		tz = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return worker.Schedule{}, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", tz))
	}

	syncAt, err := worker.ParseClockTime(file.SyncAt)
	if err != nil {
		return worker.Schedule{}, goerr.Wrap(err, "invalid sync_at")
	}

	standups, err := parseTypeSchedule(file.Standups)
	if err != nil {
		return worker.Schedule{}, goerr.Wrap(err, "invalid standups schedule")
	}
	learningHours, err := parseTypeSchedule(file.LearningHours)
	if err != nil {
		return worker.Schedule{}, goerr.Wrap(err, "invalid learning_hours schedule")
	}

	return worker.Schedule{
		Location:      loc,
		Standups:      standups,
		LearningHours: learningHours,
		SyncAt:        syncAt,
	}, nil
}

func parseTypeSchedule(file typeScheduleFile) (worker.TypeSchedule, error) {
	scheduleAt, err := worker.ParseClockTime(file.ScheduleAt)
	if err != nil {
		return worker.TypeSchedule{}, goerr.Wrap(err, "invalid schedule_at")
	}
	startAt, err := worker.ParseClockTime(file.StartAt)
	if err != nil {
		return worker.TypeSchedule{}, goerr.Wrap(err, "invalid start_at")
	}
	endAt, err := worker.ParseClockTime(file.EndAt)
	if err != nil {
		return worker.TypeSchedule{}, goerr.Wrap(err, "invalid end_at")
	}

	skipDays := make([]time.Weekday, 0, len(file.SkipDays))
	for _, name := range file.SkipDays {
		day, err := parseWeekday(name)
		if err != nil {
			return worker.TypeSchedule{}, err
		}
		skipDays = append(skipDays, day)
	}

	return worker.TypeSchedule{
		ScheduleAt: scheduleAt,
		StartAt:    startAt,
		EndAt:      endAt,
		SkipDays:   skipDays,
	}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdays[name]
	if !ok {
		return 0, goerr.New("invalid weekday in skip_days", goerr.V("value", name))
	}
	return day, nil
}
