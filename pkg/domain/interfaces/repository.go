package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Employee() EmployeeRepository
	Session() SessionRepository
	Attendance() AttendanceRepository
	LearningPoint() LearningPointRepository
	Feedback() FeedbackRepository

	Close() error
}
