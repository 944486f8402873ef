package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a single published event. Creator identity is denormalized
// (name/email alongside the id) so event listings render without a join.
type Event struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Date           time.Time          `bson:"date" json:"date"`
	Cost           float64            `bson:"cost" json:"cost"`
	CreatedBy      primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedByName  string             `bson:"created_by_name" json:"created_by_name"`
	CreatedByEmail string             `bson:"created_by_email" json:"created_by_email"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// EventWithStats augments an event with its registration count for the
// admin dashboard.
type EventWithStats struct {
	Event             `bson:",inline"`
	RegistrationCount int64 `bson:"registration_count" json:"registrationCount"`
}
