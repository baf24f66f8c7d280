package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

func TestNewAttendanceRecord(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	scheduled := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	marked := scheduled.Add(30 * time.Minute)

	emp := &model.Employee{
		ID:         "uid-1",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		EmployeeID: "NW123",
	}

	t.Run("standup record", func(t *testing.T) {
		rec := model.NewAttendanceRecord(types.SessionTypeStandup, "2025-03-10", emp,
			types.AttendanceStatusPresent, "", scheduled, marked)

		gt.V(t, rec.ID).Equal("2025-03-10_uid-1")
		gt.V(t, rec.StandupID).Equal("2025-03-10")
		gt.V(t, rec.LearningHourID).Equal("")
		gt.V(t, rec.SessionDate()).Equal(types.SessionDate("2025-03-10"))
		gt.V(t, rec.EmployeeID).Equal("NW123")
	})

	t.Run("learning hour record", func(t *testing.T) {
		rec := model.NewAttendanceRecord(types.SessionTypeLearningHour, "2025-03-10", emp,
			types.AttendanceStatusNotAvailable, "travelling", scheduled, marked)

		gt.V(t, rec.StandupID).Equal("")
		gt.V(t, rec.LearningHourID).Equal("2025-03-10")
		gt.V(t, rec.Reason).Equal("travelling")
	})
}

func TestAttendanceRecord_SheetRow(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	scheduled := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	emp := &model.Employee{
		ID:         "uid-1",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		EmployeeID: "NW123",
	}
	rec := model.NewAttendanceRecord(types.SessionTypeStandup, "2025-03-10", emp,
		types.AttendanceStatusAbsent, "", scheduled, scheduled)

	row := rec.SheetRow(types.SessionTypeStandup, loc)
	gt.A(t, row).Length(8)
	gt.V(t, row[0]).Equal(any("2025-03-10"))
	gt.V(t, row[1]).Equal(any("02:30 PM")) // 09:00 UTC in IST
	gt.V(t, row[2]).Equal(any("standups"))
	gt.V(t, row[3]).Equal(any("NW123"))
	gt.V(t, row[4]).Equal(any("Asha Rao"))
	gt.V(t, row[5]).Equal(any("asha@example.com"))
	gt.V(t, row[6]).Equal(any("Absent"))
	gt.V(t, row[7]).Equal(any(""))
}

func TestLearningPoint_DedupeKey(t *testing.T) {
	p := &model.LearningPoint{
		Date:      "2025-03-10",
		TaskName:  "API review",
		PointType: "improvement",
	}
	gt.V(t, p.DedupeKey()).Equal("2025-03-10|API review|improvement")
	gt.V(t, model.LearningPointDedupeKey("2025-03-10", "API review", "improvement")).Equal(p.DedupeKey())
}

func TestLearningPoint_SheetRow(t *testing.T) {
	p := &model.LearningPoint{
		Date:              "2025-03-10",
		TaskName:          "API review",
		FrameworkCategory: "engineering",
		Subcategory:       "design",
		PointType:         "improvement",
		Recipient:         "self",
		Situation:         "reviewing the v2 endpoints",
		Behavior:          "missed pagination edge case",
		Impact:            "rework after review",
		ActionItem:        "add checklist item",
	}
	row := p.SheetRow()
	gt.A(t, row).Length(10)
	gt.V(t, row[0]).Equal(any("2025-03-10"))
	gt.V(t, row[1]).Equal(any("API review"))
	gt.V(t, row[4]).Equal(any("improvement"))
}
