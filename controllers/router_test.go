package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mohanmeesala2005/EventHub/middleware"
	"github.com/mohanmeesala2005/EventHub/models"
	"github.com/mohanmeesala2005/EventHub/storage"
	"github.com/mohanmeesala2005/EventHub/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	events *fakeEventStore
	users  *fakeUserStore
	regs   *fakeRegistrationStore
}

// newTestEnv wires the fakes into the same route table main.go builds.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	env := &testEnv{
		events: newFakeEventStore(),
		users:  newFakeUserStore(),
		regs:   newFakeRegistrationStore(),
	}

	files := storage.NewFileStorage(t.TempDir())
	authController := NewAuthController(env.users)
	eventController := NewEventController(env.events, env.regs, env.users, files)

	r := gin.New()

	auth := r.Group("/auth")
	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.POST("/update", middleware.Auth(), authController.UpdateProfile)

	events := r.Group("/events")
	events.POST("/create", middleware.Auth(), eventController.CreateEvent)
	events.POST("/getevent", eventController.GetAllEvents)
	events.PUT("/:id", middleware.Auth(), eventController.UpdateEvent)
	events.DELETE("/:id", middleware.Auth(), eventController.DeleteEvent)
	events.POST("/register", middleware.Auth(), eventController.RegisterForEvent)
	events.GET("/registrations", middleware.Auth(), eventController.GetUserRegistrations)
	events.GET("/registrations/:eventId", eventController.GetEventRegistrations)

	admin := events.Group("/admin", middleware.Auth(), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/events-with-stats", eventController.GetAllEventsWithStats)
	admin.GET("/all-registrations", eventController.GetAllRegistrations)

	env.router = r
	return env
}

// seedUser inserts a user directly into the fake store and returns it
// with a valid token.
func (env *testEnv) seedUser(t *testing.T, name, username, email, role string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password1")
	require.NoError(t, err)

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, env.users.Insert(context.Background(), &user))

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) seedEvent(t *testing.T, title string, date time.Time, creator models.User) models.Event {
	t.Helper()

	event := models.Event{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Description:    "seeded",
		Date:           date,
		CreatedBy:      creator.ID,
		CreatedByName:  creator.Name,
		CreatedByEmail: creator.Email,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, env.events.Insert(context.Background(), &event))
	return event
}

func (env *testEnv) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) doForm(method, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) doMultipart(method, path, token string, fields map[string]string, fileField, fileName, fileContent string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := mw.CreateFormFile(fileField, fileName)
		_, _ = io.Copy(part, strings.NewReader(fileContent))
	}
	mw.Close()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
