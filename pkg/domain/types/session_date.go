package types

import (
	"fmt"
	"time"
)

// SessionDateLayout is the document id / date key format for session documents
const SessionDateLayout = "2006-01-02"

// SessionDate is a calendar day in yyyy-MM-dd form. It doubles as the session
// document id and as the first-column date tag in the attendance spreadsheet.
type SessionDate string

// NewSessionDate returns the SessionDate for t in the given location
func NewSessionDate(t time.Time, loc *time.Location) SessionDate {
	return SessionDate(t.In(loc).Format(SessionDateLayout))
}

// IsValid checks if the date is well-formed
func (d SessionDate) IsValid() bool {
	_, err := time.Parse(SessionDateLayout, string(d))
	return err == nil
}

// String returns the string representation of the session date
func (d SessionDate) String() string {
	return string(d)
}

// Time returns midnight of the date in the given location
func (d SessionDate) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(SessionDateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date: %s", d)
	}
	return t, nil
}

// ParseSessionDate parses a string into a SessionDate
func ParseSessionDate(s string) (SessionDate, error) {
	d := SessionDate(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid session date (want yyyy-MM-dd): %s", s)
	}
	return d, nil
}
