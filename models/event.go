package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	forms "github.com/astraclub/club-platform-go/forms"
)

// WebhookConfig points registrations at an optional external integration
// (Google Sheets bridge, Zapier, etc.). Relay is best-effort.
type WebhookConfig struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	URL     string `bson:"url,omitempty" json:"url,omitempty"`
}

type Event struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Category           string             `bson:"category,omitempty" json:"category,omitempty"`
	Date               *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	Venue              string             `bson:"venue,omitempty" json:"venue,omitempty"`
	RegistrationFee    float64            `bson:"registration_fee,omitempty" json:"registration_fee,omitempty"`
	MaxParticipants    int                `bson:"max_participants,omitempty" json:"max_participants,omitempty"`
	IsRegistrationOpen bool               `bson:"is_registration_open" json:"is_registration_open"`
	IsFeatured         bool               `bson:"is_featured" json:"is_featured"`
	ImageURL           string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	FormSchema         forms.Schema       `bson:"form_schema" json:"form_schema"`
	Webhook            WebhookConfig      `bson:"webhook" json:"webhook"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}
