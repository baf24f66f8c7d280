package model

import (
	"fmt"
	"time"

	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// LearningPoint is one point logged by a user during a learning session.
// Points stay editable while the owning session is open and are locked
// (editable=false) in the same batch that ends the session.
type LearningPoint struct {
	ID string `firestore:"-" json:"id"`

	SessionID string `firestore:"sessionId" json:"session_id"`
	UserID    string `firestore:"userId" json:"user_id"`

	TaskName          string `firestore:"task_name" json:"task_name"`
	FrameworkCategory string `firestore:"framework_category" json:"framework_category"`
	Subcategory       string `firestore:"subcategory" json:"subcategory"`
	PointType         string `firestore:"point_type" json:"point_type"`
	Recipient         string `firestore:"recipient,omitempty" json:"recipient,omitempty"`
	Situation         string `firestore:"situation,omitempty" json:"situation,omitempty"`
	Behavior          string `firestore:"behavior,omitempty" json:"behavior,omitempty"`
	Impact            string `firestore:"impact,omitempty" json:"impact,omitempty"`
	ActionItem        string `firestore:"action_item,omitempty" json:"action_item,omitempty"`

	Date      types.SessionDate `firestore:"date" json:"date"`
	CreatedAt time.Time         `firestore:"createdAt" json:"created_at"`

	Editable bool `firestore:"editable" json:"editable"`
}

// DedupeKey is the composite duplicate-detection key used by the sync engine.
// A point is considered already present in a subsheet when a row with the
// same (date, task, point type) exists.
func (p *LearningPoint) DedupeKey() string {
	return LearningPointDedupeKey(p.Date.String(), p.TaskName, p.PointType)
}

// LearningPointDedupeKey builds the composite key from raw cell values
func LearningPointDedupeKey(date, taskName, pointType string) string {
	return fmt.Sprintf("%s|%s|%s", date, taskName, pointType)
}

// SheetRow maps the point to its per-employee subsheet row. Column order is
// fixed: date, task, framework category, subcategory, point type, recipient,
// situation, behavior, impact, action item.
func (p *LearningPoint) SheetRow() []any {
	return []any{
		p.Date.String(),
		p.TaskName,
		p.FrameworkCategory,
		p.Subcategory,
		p.PointType,
		p.Recipient,
		p.Situation,
		p.Behavior,
		p.Impact,
		p.ActionItem,
	}
}
