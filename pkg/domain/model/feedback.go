package model

import "time"

// PeerFeedback is one piece of feedback given by one employee to another
type PeerFeedback struct {
	ID string `firestore:"-" json:"id"`

	GiverUID     string `firestore:"giverUid" json:"giver_uid"`
	RecipientUID string `firestore:"recipientUid" json:"recipient_uid"`
	Message      string `firestore:"message" json:"message"`

	// Summary holds the AI-generated structured form, when available
	Summary *FeedbackSummary `firestore:"summary,omitempty" json:"summary,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}

// FeedbackSummary is the structured (Situation/Behavior/Impact) form of a
// free-text feedback message, produced best-effort by the AI helper.
type FeedbackSummary struct {
	Situation string `firestore:"situation" json:"situation"`
	Behavior  string `firestore:"behavior" json:"behavior"`
	Impact    string `firestore:"impact" json:"impact"`
}
