package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	forms "github.com/astraclub/club-platform-go/forms"
)

// Response review states, assigned by the store and mutable by admins.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the known review states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// FormResponse is one submitter's answers to an event's registration form.
// Event id and title are denormalized for display; the responses map keys are
// the field ids that existed in the schema at submission time.
type FormResponse struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID     `bson:"event_id" json:"event_id"`
	EventTitle  string                 `bson:"event_title" json:"event_title"`
	UserID      *primitive.ObjectID    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Responses   map[string]forms.Entry `bson:"responses" json:"responses"`
	Status      string                 `bson:"status" json:"status"`
	SubmittedAt time.Time              `bson:"submitted_at" json:"submitted_at"`
}
