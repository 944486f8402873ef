package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventRegistration records one registration attempt. There is no
// uniqueness constraint: the same user may register for the same event
// more than once, and EventID is not checked against the events
// collection at insert time.
type EventRegistration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"event_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Cost      float64            `bson:"cost" json:"cost"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PopulatedRegistration resolves the stored references at read time.
// Event or User is null when the referenced document no longer exists
// (events can be deleted without cascading to their registrations).
type PopulatedRegistration struct {
	EventRegistration
	Event *Event       `json:"event"`
	User  *UserSummary `json:"user,omitempty"`
}
