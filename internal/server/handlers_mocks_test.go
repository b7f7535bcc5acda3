package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Talha62370/Real-Time-Polling/internal/config"
	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	apperrors "github.com/Talha62370/Real-Time-Polling/internal/errors"
	"github.com/Talha62370/Real-Time-Polling/internal/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
)

// --- Mock implementations ---

type mockAppService struct {
	createUserFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	listUsersFn  func(ctx context.Context) ([]domain.User, error)
	updateUserFn func(ctx context.Context, userID int64, update domain.UserUpdate) (*domain.User, error)
	deleteUserFn func(ctx context.Context, userID int64) error

	createPollFn func(ctx context.Context, question string, creatorID int64, options []string) (*domain.Poll, error)
	getPollFn    func(ctx context.Context, pollID int64) (*domain.PollView, error)
	updatePollFn func(ctx context.Context, pollID int64, update domain.PollUpdate) (*domain.Poll, error)
	deletePollFn func(ctx context.Context, pollID int64) error

	castVoteFn   func(ctx context.Context, userID, pollOptionID int64) (*domain.Vote, error)
	deleteVoteFn func(ctx context.Context, voteID int64) error
}

func (m *mockAppService) CreateUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, name, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return []domain.User{}, nil
}

func (m *mockAppService) UpdateUser(ctx context.Context, userID int64, update domain.UserUpdate) (*domain.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, userID, update)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) DeleteUser(ctx context.Context, userID int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockAppService) CreatePoll(ctx context.Context, question string, creatorID int64, options []string) (*domain.Poll, error) {
	if m.createPollFn != nil {
		return m.createPollFn(ctx, question, creatorID, options)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) GetPoll(ctx context.Context, pollID int64) (*domain.PollView, error) {
	if m.getPollFn != nil {
		return m.getPollFn(ctx, pollID)
	}
	return nil, domain.ErrPollNotFound
}

func (m *mockAppService) UpdatePoll(ctx context.Context, pollID int64, update domain.PollUpdate) (*domain.Poll, error) {
	if m.updatePollFn != nil {
		return m.updatePollFn(ctx, pollID, update)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) DeletePoll(ctx context.Context, pollID int64) error {
	if m.deletePollFn != nil {
		return m.deletePollFn(ctx, pollID)
	}
	return nil
}

func (m *mockAppService) CastVote(ctx context.Context, userID, pollOptionID int64) (*domain.Vote, error) {
	if m.castVoteFn != nil {
		return m.castVoteFn(ctx, userID, pollOptionID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) DeleteVote(ctx context.Context, voteID int64) error {
	if m.deleteVoteFn != nil {
		return m.deleteVoteFn(ctx, voteID)
	}
	return nil
}

type stubHealthChecker struct {
	err error
}

func (s *stubHealthChecker) Ping(_ context.Context) error {
	return s.err
}

// --- Test helpers ---

func newTestServer(t *testing.T, appSvc domain.AppService) *Server {
	t.Helper()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// Install middleware for tests to match production behavior
	e.Use(correlationMiddleware())
	e.Use(apperrors.Middleware())

	hub := websocket.NewHub(clockwork.NewRealClock())
	t.Cleanup(func() { hub.Stop() })

	srv := &Server{
		echo:      e,
		config:    &config.Config{Port: "5000"},
		app:       appSvc,
		hub:       hub,
		db:        &stubHealthChecker{},
		startTime: time.Now(),
	}
	srv.registerRoutes()

	return srv
}

// doJSON runs a JSON request through the full router and middleware stack.
func doJSON(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}
