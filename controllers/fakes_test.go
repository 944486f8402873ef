package controllers

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mohanmeesala2005/EventHub/models"
	"github.com/mohanmeesala2005/EventHub/store"
)

// In-memory store fakes mirroring the Mongo implementations' contracts.

type fakeEventStore struct {
	events map[primitive.ObjectID]models.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[primitive.ObjectID]models.Event{}}
}

func (s *fakeEventStore) Insert(_ context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	s.events[event.ID] = *event
	return nil
}

func (s *fakeEventStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	ev, ok := s.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &ev, nil
}

func (s *fakeEventStore) FindAll(_ context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *fakeEventStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Event, error) {
	out := map[primitive.ObjectID]models.Event{}
	for _, id := range ids {
		if ev, ok := s.events[id]; ok {
			out[id] = ev
		}
	}
	return out, nil
}

func (s *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	if _, ok := s.events[event.ID]; !ok {
		return store.ErrNotFound
	}
	s.events[event.ID] = *event
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return store.ErrDuplicate
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			uCopy := u
			return &uCopy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) Exists(_ context.Context, email, username string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s *fakeUserStore) FindAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && (u.Email == user.Email || u.Username == user.Username) {
			return store.ErrDuplicate
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) SetRole(_ context.Context, email, role string) (*models.User, error) {
	for id, u := range s.users {
		if u.Email == email {
			u.Role = role
			s.users[id] = u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeRegistrationStore struct {
	regs []models.EventRegistration
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{}
}

func (s *fakeRegistrationStore) Insert(_ context.Context, reg *models.EventRegistration) error {
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	s.regs = append(s.regs, *reg)
	return nil
}

func (s *fakeRegistrationStore) FindByEvent(_ context.Context, eventID primitive.ObjectID) ([]models.EventRegistration, error) {
	return s.filtered(func(r models.EventRegistration) bool { return r.EventID == eventID }), nil
}

func (s *fakeRegistrationStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.EventRegistration, error) {
	return s.filtered(func(r models.EventRegistration) bool { return r.UserID == userID }), nil
}

func (s *fakeRegistrationStore) FindAll(_ context.Context) ([]models.EventRegistration, error) {
	return s.filtered(func(models.EventRegistration) bool { return true }), nil
}

func (s *fakeRegistrationStore) filtered(keep func(models.EventRegistration) bool) []models.EventRegistration {
	out := []models.EventRegistration{}
	for _, r := range s.regs {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *fakeRegistrationStore) CountsByEvent(_ context.Context) (map[primitive.ObjectID]int64, error) {
	counts := map[primitive.ObjectID]int64{}
	for _, r := range s.regs {
		counts[r.EventID]++
	}
	return counts, nil
}
