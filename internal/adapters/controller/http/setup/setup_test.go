package setup_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"event-manager-api/internal/adapters/controller/http/setup"
	"event-manager-api/internal/adapters/memory"
	"event-manager-api/internal/domain/policy"
	"event-manager-api/internal/domain/service"
	"event-manager-api/internal/domain/utils/validator"
	"event-manager-api/pkg/logger/types"
)

const (
	masterUsername = "masteradmin"
	masterPassword = "master-secret"
)

func newTestApp() *fiber.App {
	users := memory.NewUserStorage()
	registrations := memory.NewEventAttendeeStorage()
	events := memory.NewEventStorage(registrations)
	tokens := memory.NewTokenStorage()
	accessPolicy := policy.New(masterUsername)
	log := &types.Logger{SugaredLogger: zap.NewNop().Sugar()}

	authService := service.NewAuthService(users, tokens, service.AuthConfig{
		MasterUsername: masterUsername,
		MasterPassword: masterPassword,
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
	})

	app := fiber.New()
	setup.Setup(app, setup.Dependencies{
		AuthService:     authService,
		UserService:     service.NewUserService(users, accessPolicy),
		EventService:    service.NewEventService(events, users, accessPolicy),
		AttendeeService: service.NewEventAttendeeService(log, registrations, events, users),
		Validator:       validator.New(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "bearer", body["token_type"])
	return token
}

func registerUser(t *testing.T, app *fiber.App, adminToken, username, password, role string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/users/register", adminToken, fiber.Map{
		"username": username,
		"password": password,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, username, body["username"])
	assert.NotContains(t, body, "password")
}

func futureDate() string {
	return time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Welcome to the Event Management API", decodeBody(t, resp)["message"])
}

func TestRegistrationAccessControl(t *testing.T) {
	app := newTestApp()
	adminToken := login(t, app, masterUsername, masterPassword)

	// No token at all.
	resp := doJSON(t, app, http.MethodPost, "/users/register", "", fiber.Map{
		"username": "alice", "password": "Passw0rd!", "role": "attendee",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	registerUser(t, app, adminToken, "olivia", "Passw0rd!", "organizer")

	// Organizers cannot mint accounts.
	organizerToken := login(t, app, "olivia", "Passw0rd!")
	resp = doJSON(t, app, http.MethodPost, "/users/register", organizerToken, fiber.Map{
		"username": "alice", "password": "Passw0rd!", "role": "attendee",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The master username is reserved in any casing.
	resp = doJSON(t, app, http.MethodPost, "/users/register", adminToken, fiber.Map{
		"username": "MasterAdmin", "password": "Passw0rd!", "role": "attendee",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The master role itself is not assignable.
	resp = doJSON(t, app, http.MethodPost, "/users/register", adminToken, fiber.Map{
		"username": "alice", "password": "Passw0rd!", "role": "masteradmin",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Duplicates are a client error.
	registerUser(t, app, adminToken, "alice", "Passw0rd!", "attendee")
	resp = doJSON(t, app, http.MethodPost, "/users/register", adminToken, fiber.Map{
		"username": "alice", "password": "Passw0rd!", "role": "attendee",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventLifecycleAndOwnership(t *testing.T) {
	app := newTestApp()
	adminToken := login(t, app, masterUsername, masterPassword)
	registerUser(t, app, adminToken, "olivia", "Passw0rd!", "organizer")
	registerUser(t, app, adminToken, "oscar", "Passw0rd!", "organizer")

	oliviaToken := login(t, app, "olivia", "Passw0rd!")
	oscarToken := login(t, app, "oscar", "Passw0rd!")

	resp := doJSON(t, app, http.MethodPost, "/events/events", oliviaToken, fiber.Map{
		"title":    "Go meetup",
		"location": "Community hall",
		"date":     futureDate(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	eventID := int(created["id"].(float64))
	assert.Equal(t, "Scheduled", created["status"])
	assert.Empty(t, created["attendees"])

	eventPath := fmt.Sprintf("/events/events/%d", eventID)

	// A different organizer cannot touch it.
	resp = doJSON(t, app, http.MethodPut, eventPath, oscarToken, fiber.Map{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The owner and the master admin can.
	resp = doJSON(t, app, http.MethodPut, eventPath, oliviaToken, fiber.Map{"title": "Go meetup, take two"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Go meetup, take two", decodeBody(t, resp)["title"])

	resp = doJSON(t, app, http.MethodPut, eventPath, adminToken, fiber.Map{"location": "Main stage"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Reads are public.
	resp = doJSON(t, app, http.MethodGet, eventPath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody(t, resp)
	assert.Equal(t, "Go meetup, take two", fetched["title"])
	assert.Equal(t, "Main stage", fetched["location"])

	resp = doJSON(t, app, http.MethodDelete, eventPath, oscarToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, eventPath, oliviaToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, eventPath, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParticipationFlow(t *testing.T) {
	app := newTestApp()
	adminToken := login(t, app, masterUsername, masterPassword)
	registerUser(t, app, adminToken, "olivia", "Passw0rd!", "organizer")
	registerUser(t, app, adminToken, "alice", "Passw0rd!", "attendee")
	registerUser(t, app, adminToken, "bob", "Passw0rd!", "attendee")

	oliviaToken := login(t, app, "olivia", "Passw0rd!")
	aliceToken := login(t, app, "alice", "Passw0rd!")
	bobToken := login(t, app, "bob", "Passw0rd!")

	resp := doJSON(t, app, http.MethodPost, "/events/events", oliviaToken, fiber.Map{
		"title":         "Tiny workshop",
		"location":      "Room 101",
		"date":          futureDate(),
		"max_attendees": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	eventID := int(decodeBody(t, resp)["id"].(float64))

	joinPath := fmt.Sprintf("/event-participation/events/%d/join", eventID)
	leavePath := fmt.Sprintf("/event-participation/events/%d/leave", eventID)

	resp = doJSON(t, app, http.MethodPost, joinPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Successfully registered for the event", decodeBody(t, resp)["message"])

	// Full event turns the next join away.
	resp = doJSON(t, app, http.MethodPost, joinPath, bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Joining twice is a client error too.
	resp = doJSON(t, app, http.MethodPost, joinPath, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The attendee list is publicly visible on the event.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/events/events/%d", eventID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	attendees, _ := decodeBody(t, resp)["attendees"].([]interface{})
	assert.Len(t, attendees, 1)

	// Leaving frees the seat.
	resp = doJSON(t, app, http.MethodDelete, leavePath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Successfully unregistered from the event", decodeBody(t, resp)["message"])

	resp = doJSON(t, app, http.MethodDelete, leavePath, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, joinPath, bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserListRequiresAdmin(t *testing.T) {
	app := newTestApp()
	adminToken := login(t, app, masterUsername, masterPassword)
	registerUser(t, app, adminToken, "alice", "Passw0rd!", "attendee")

	aliceToken := login(t, app, "alice", "Passw0rd!")

	resp := doJSON(t, app, http.MethodGet, "/users/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/users/users", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Len(t, listed, 1)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp()
	adminToken := login(t, app, masterUsername, masterPassword)

	resp := doJSON(t, app, http.MethodPost, "/users/logout", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/users/users", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp()

	form := url.Values{}
	form.Set("username", masterUsername)
	form.Set("password", "wrong")

	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
