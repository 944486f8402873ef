package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mohanmeesala2005/EventHub/models"
)

type mongoRegistrationStore struct {
	col *mongo.Collection
}

func NewMongoRegistrationStore(db *mongo.Database) RegistrationStore {
	return &mongoRegistrationStore{col: db.Collection("event_registrations")}
}

func (s *mongoRegistrationStore) Insert(ctx context.Context, reg *models.EventRegistration) error {
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, reg)
	return err
}

func (s *mongoRegistrationStore) FindByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.EventRegistration, error) {
	return s.find(ctx, bson.M{"event_id": eventID})
}

func (s *mongoRegistrationStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.EventRegistration, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *mongoRegistrationStore) FindAll(ctx context.Context) ([]models.EventRegistration, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoRegistrationStore) find(ctx context.Context, filter bson.M) ([]models.EventRegistration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	regs := []models.EventRegistration{}
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// CountsByEvent runs one $group over the whole collection instead of a
// count query per event.
func (s *mongoRegistrationStore) CountsByEvent(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$event_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		EventID primitive.ObjectID `bson:"_id"`
		Count   int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[primitive.ObjectID]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}
