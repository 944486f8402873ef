package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mohanmeesala2005/EventHub/models"
	"github.com/mohanmeesala2005/EventHub/storage"
	"github.com/mohanmeesala2005/EventHub/store"
)

// imagePrefix is the URL prefix under which stored images are served.
const imagePrefix = "uploads/"

// dateLayouts accepted for the event date form field, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type EventController struct {
	events        store.EventStore
	registrations store.RegistrationStore
	users         store.UserStore
	files         storage.FileStorage
}

func NewEventController(events store.EventStore, registrations store.RegistrationStore, users store.UserStore, files storage.FileStorage) *EventController {
	return &EventController{
		events:        events,
		registrations: registrations,
		users:         users,
		files:         files,
	}
}

// RegisterInput is the request body for registering for an event.
type RegisterInput struct {
	EventID string `json:"eventId" binding:"required"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// CreateEvent persists a new event from a multipart form. The creator's
// name and email are denormalized from the authenticated account, not
// trusted from the request body.
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	date, err := parseEventDate(c.PostForm("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	cost, err := parseCost(c.PostForm("cost"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	creator, err := ec.users.FindByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	event := models.Event{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Description:    c.PostForm("description"),
		Date:           date,
		Cost:           cost,
		CreatedBy:      creator.ID,
		CreatedByName:  creator.Name,
		CreatedByEmail: creator.Email,
		CreatedAt:      time.Now().UTC(),
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := ec.storeImage(file)
		if err != nil {
			logrus.WithError(err).Error("create event: image store failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
			return
		}
		event.Image = path
	}

	if err := ec.events.Insert(ctx, &event); err != nil {
		logrus.WithError(err).Error("create event: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetAllEvents returns every event ordered by ascending date.
func (ec *EventController) GetAllEvents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, err := ec.events.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("list events: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// UpdateEvent merges the supplied form fields into the stored event.
// Omitted fields keep their values. A replacement image deletes the old
// file best-effort.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	event, err := ec.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logrus.WithError(err).Error("update event: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
		return
	}

	if title, ok := c.GetPostForm("title"); ok {
		event.Title = title
	}
	if description, ok := c.GetPostForm("description"); ok {
		event.Description = description
	}
	if dateStr, ok := c.GetPostForm("date"); ok {
		date, err := parseEventDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		event.Date = date
	}
	if costStr, ok := c.GetPostForm("cost"); ok {
		cost, err := parseCost(costStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		event.Cost = cost
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := ec.storeImage(file)
		if err != nil {
			logrus.WithError(err).Error("update event: image store failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
			return
		}
		ec.deleteImage(event.Image)
		event.Image = path
	}

	if err := ec.events.Update(ctx, event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logrus.WithError(err).Error("update event: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event updated successfully", "event": event})
}

// DeleteEvent removes the event document after a best-effort delete of
// its image file. Registrations are not cascaded; they keep their
// dangling event id.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	event, err := ec.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logrus.WithError(err).Error("delete event: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
		return
	}

	ec.deleteImage(event.Image)

	if err := ec.events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logrus.WithError(err).Error("delete event: delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

// RegisterForEvent inserts one registration document unconditionally:
// no duplicate check and no verification that the event exists.
func (ec *EventController) RegisterForEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID, err := primitive.ObjectIDFromHex(input.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	reg := models.EventRegistration{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		UserID:    userID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := ec.registrations.Insert(ctx, &reg); err != nil {
		logrus.WithError(err).Error("register: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered successfully"})
}

// GetEventRegistrations lists every registration for one event. The
// route carries no auth middleware on purpose; see the route table.
func (ec *EventController) GetEventRegistrations(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	regs, err := ec.registrations.FindByEvent(ctx, eventID)
	if err != nil {
		logrus.WithError(err).Error("event registrations: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, regs)
}

// GetUserRegistrations returns the caller's registrations, newest
// first, each with its event resolved. Event is null when the event has
// since been deleted.
func (ec *EventController) GetUserRegistrations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	regs, err := ec.registrations.FindByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).Error("user registrations: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
		return
	}

	populated, err := ec.populate(ctx, regs, false)
	if err != nil {
		logrus.WithError(err).Error("user registrations: populate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, populated)
}

// GetAllEventsWithStats returns every event with its registration
// count, computed by a single grouped aggregation rather than one count
// query per event.
func (ec *EventController) GetAllEventsWithStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, err := ec.events.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("events with stats: event query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
		return
	}

	counts, err := ec.registrations.CountsByEvent(ctx)
	if err != nil {
		logrus.WithError(err).Error("events with stats: count query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
		return
	}

	out := make([]models.EventWithStats, 0, len(events))
	for _, ev := range events {
		out = append(out, models.EventWithStats{
			Event:             ev,
			RegistrationCount: counts[ev.ID],
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetAllRegistrations returns every registration with both references
// resolved, newest first.
func (ec *EventController) GetAllRegistrations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	regs, err := ec.registrations.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("all registrations: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
		return
	}

	populated, err := ec.populate(ctx, regs, true)
	if err != nil {
		logrus.WithError(err).Error("all registrations: populate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, populated)
}

// populate resolves event (and optionally user) references with one
// batched $in query per collection.
func (ec *EventController) populate(ctx context.Context, regs []models.EventRegistration, withUsers bool) ([]models.PopulatedRegistration, error) {
	eventIDs := make([]primitive.ObjectID, 0, len(regs))
	userIDs := make([]primitive.ObjectID, 0, len(regs))
	seenEvents := map[primitive.ObjectID]bool{}
	seenUsers := map[primitive.ObjectID]bool{}
	for _, reg := range regs {
		if !seenEvents[reg.EventID] {
			seenEvents[reg.EventID] = true
			eventIDs = append(eventIDs, reg.EventID)
		}
		if withUsers && !seenUsers[reg.UserID] {
			seenUsers[reg.UserID] = true
			userIDs = append(userIDs, reg.UserID)
		}
	}

	events, err := ec.events.FindByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	var users map[primitive.ObjectID]models.User
	if withUsers {
		users, err = ec.users.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	out := make([]models.PopulatedRegistration, 0, len(regs))
	for _, reg := range regs {
		p := models.PopulatedRegistration{EventRegistration: reg}
		if ev, ok := events[reg.EventID]; ok {
			evCopy := ev
			p.Event = &evCopy
		}
		if withUsers {
			if u, ok := users[reg.UserID]; ok {
				summary := u.Summary()
				p.User = &summary
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (ec *EventController) storeImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name, err := ec.files.Save(file.Filename, src)
	if err != nil {
		return "", err
	}
	return imagePrefix + name, nil
}

// deleteImage removes a stored image file best-effort. Failures are
// logged and never fail the enclosing request.
func (ec *EventController) deleteImage(path string) {
	if path == "" {
		return
	}
	if err := ec.files.Delete(strings.TrimPrefix(path, imagePrefix)); err != nil {
		logrus.WithError(err).WithField("image", path).Warn("failed to delete image file")
	}
}

func parseEventDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

func parseCost(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	cost, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New("invalid cost")
	}
	if cost < 0 {
		return 0, errors.New("cost must not be negative")
	}
	return cost, nil
}
