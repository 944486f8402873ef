package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mohanmeesala2005/EventHub/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// EventStore is the persistence surface for events.
type EventStore interface {
	Insert(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	// FindAll returns every event ordered by ascending date. Unbounded.
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the persistence surface for accounts.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindByIdentifier matches either username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// Exists reports whether any user already holds the email or username.
	Exists(ctx context.Context, email, username string) (bool, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetRole(ctx context.Context, email, role string) (*models.User, error)
}

// RegistrationStore is the persistence surface for event registrations.
// Inserts are unconditional: duplicates and dangling event ids are allowed.
type RegistrationStore interface {
	Insert(ctx context.Context, reg *models.EventRegistration) error
	FindByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.EventRegistration, error)
	// FindByUser returns the user's registrations, newest first.
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.EventRegistration, error)
	// FindAll returns every registration, newest first.
	FindAll(ctx context.Context) ([]models.EventRegistration, error)
	// CountsByEvent groups all registrations by event id in a single
	// aggregation round trip.
	CountsByEvent(ctx context.Context) (map[primitive.ObjectID]int64, error)
}
