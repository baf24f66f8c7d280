package model

// Employee is a member of the organization tracked for attendance.
// The document id is the auth UID; EmployeeID carries the org-assigned
// external id used to key spreadsheet subsheets.
type Employee struct {
	ID         string `firestore:"-" json:"uid"`
	Name       string `firestore:"name" json:"name"`
	Email      string `firestore:"email" json:"email"`
	EmployeeID string `firestore:"employeeId" json:"employee_id"`
	Archived   bool   `firestore:"archived" json:"archived"`
}
