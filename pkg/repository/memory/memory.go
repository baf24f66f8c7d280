package memory

import (
	"github.com/nxtprof/nxtprof/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	employee      *employeeRepository
	session       *sessionRepository
	attendance    *attendanceRepository
	learningPoint *learningPointRepository
	feedback      *feedbackRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		employee:      newEmployeeRepository(),
		session:       newSessionRepository(),
		attendance:    newAttendanceRepository(),
		learningPoint: newLearningPointRepository(),
		feedback:      newFeedbackRepository(),
	}
}

func (m *Memory) Employee() interfaces.EmployeeRepository {
	return m.employee
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) Attendance() interfaces.AttendanceRepository {
	return m.attendance
}

func (m *Memory) LearningPoint() interfaces.LearningPointRepository {
	return m.learningPoint
}

func (m *Memory) Feedback() interfaces.FeedbackRepository {
	return m.feedback
}

func (m *Memory) Close() error {
	return nil
}
