package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/app/http/auth"
	"finledger/internal/gateway/app/http/middleware"
	servicePorts "finledger/internal/gateway/ports/services"
)

// fakeSessionService воспроизводит контракт сервиса сессии в памяти.
type fakeSessionService struct {
	loginErr    error
	registerErr error
	resetErr    error
	session     servicePorts.Session
	resetEmails []string
}

func (f *fakeSessionService) Login(_ context.Context, _, _ string) (servicePorts.Navigation, error) {
	if f.loginErr != nil {
		f.session.Error = "No active account found with the given credentials"
		return servicePorts.Navigation{}, f.loginErr
	}
	f.session = servicePorts.Session{User: &dto.User{ID: 7, Username: "alice"}}
	return servicePorts.Navigation{Target: "/dashboard"}, nil
}

func (f *fakeSessionService) Register(_ context.Context, _ *dto.RegisterRequest) (servicePorts.Navigation, error) {
	if f.registerErr != nil {
		return servicePorts.Navigation{}, f.registerErr
	}
	return servicePorts.Navigation{Target: "/login?registered=true"}, nil
}

func (f *fakeSessionService) Logout(_ context.Context) servicePorts.Navigation {
	f.session = servicePorts.Session{}
	return servicePorts.Navigation{Target: "/login"}
}

func (f *fakeSessionService) ResolveSession(_ context.Context, _ servicePorts.RouteClass) (servicePorts.Session, servicePorts.Navigation) {
	return f.session, servicePorts.Navigation{}
}

func (f *fakeSessionService) ResetPassword(_ context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return f.resetErr
}

func (f *fakeSessionService) UpdateProfile(_ context.Context, _ *dto.UpdateProfileRequest) (*dto.User, error) {
	return f.session.User, nil
}

func (f *fakeSessionService) ChangePassword(_ context.Context, _ *dto.ChangePasswordRequest) error {
	return nil
}

func (f *fakeSessionService) CurrentSession() servicePorts.Session {
	return f.session
}

func (f *fakeSessionService) ClearError() {
	f.session.Error = ""
}

func newAuthApp(session servicePorts.SessionService) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())

	handler := auth.NewHandler(session)
	app.Post("/login", handler.Login)
	app.Post("/register", handler.Register)
	app.Post("/logout", handler.Logout)
	app.Post("/forget-password", handler.ForgetPassword)
	app.Get("/session", handler.Session)

	return app
}

func jsonRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLoginHandler_Success(t *testing.T) {
	app := newAuthApp(&fakeSessionService{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/dashboard", body["redirect"])
	require.NotNil(t, body["user"])
}

func TestLoginHandler_MissingFields(t *testing.T) {
	app := newAuthApp(&fakeSessionService{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", `{"username":"alice"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	session := &fakeSessionService{
		loginErr: &rest.APIError{StatusCode: http.StatusUnauthorized, Detail: "No active account"},
	}
	app := newAuthApp(session)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "No active account found with the given credentials", body["error"])
}

func TestLoginHandler_UpstreamDown(t *testing.T) {
	session := &fakeSessionService{loginErr: errors.New("connection refused")}
	app := newAuthApp(session)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRegisterHandler_Success(t *testing.T) {
	app := newAuthApp(&fakeSessionService{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register",
		`{"username":"bob","email":"bob@example.com","password":"pw","password2":"pw"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/login?registered=true", body["redirect"])
}

func TestLogoutHandler_AlwaysSucceeds(t *testing.T) {
	session := &fakeSessionService{
		session: servicePorts.Session{User: &dto.User{ID: 7}},
	}
	app := newAuthApp(session)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/logout", ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/login", body["redirect"])
	assert.False(t, session.session.IsAuthenticated())
}

func TestSessionHandler_Snapshot(t *testing.T) {
	session := &fakeSessionService{
		session: servicePorts.Session{User: &dto.User{ID: 7, Username: "alice"}},
	}
	app := newAuthApp(session)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/session", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	assert.True(t, snapshot.Authenticated)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "alice", snapshot.User.Username)
}

func TestForgetPasswordHandler_NeverRevealsOutcome(t *testing.T) {
	session := &fakeSessionService{resetErr: errors.New("no such account")}
	app := newAuthApp(session)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/forget-password", `{"email":"ghost@example.com"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Ответ одинаков для существующих и несуществующих аккаунтов.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"ghost@example.com"}, session.resetEmails)
}
