package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/api/http/handlers"
	"github.com/stacktrack/stacktrack/internal/config"
	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/events"
	"github.com/stacktrack/stacktrack/internal/observability"
	"github.com/stacktrack/stacktrack/internal/service"
	"github.com/stacktrack/stacktrack/internal/session"
	"github.com/stacktrack/stacktrack/internal/sla"
	"github.com/stacktrack/stacktrack/internal/upstream"
	"github.com/stacktrack/stacktrack/pkg/util"
)

const testCookieName = "stacktrack_session"

// fakeAPI implements the upstream surfaces the services consume.
type fakeAPI struct {
	err     error
	tickets []domain.Ticket
	user    *domain.User
}

func (f *fakeAPI) ListTickets(ctx context.Context, token string, query upstream.TicketQuery) ([]domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tickets, nil
}

func (f *fakeAPI) GetTicket(ctx context.Context, token, id string) (*domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	ticket := f.tickets[0]
	return &ticket, nil
}

func (f *fakeAPI) CreateTicket(ctx context.Context, token string, input upstream.TicketInput) (*domain.Ticket, error) {
	return &domain.Ticket{ID: "t-new", Subject: input.Subject, Status: "new", CreatedAt: "2024-01-01T12:00:00Z"}, f.err
}

func (f *fakeAPI) UpdateTicket(ctx context.Context, token, id string, input upstream.TicketInput) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id, Subject: input.Subject, Status: "new"}, f.err
}

func (f *fakeAPI) DeleteTicket(ctx context.Context, token, id string) error { return f.err }

func (f *fakeAPI) ChangeTicketStatus(ctx context.Context, token, id, status, comment string) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id, Status: status}, f.err
}

func (f *fakeAPI) AssignTicket(ctx context.Context, token, id string, assigneeID *string) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id, AssigneeID: assigneeID}, f.err
}

func (f *fakeAPI) AddNote(ctx context.Context, token, id, body string, internal bool) (*domain.Note, error) {
	return &domain.Note{ID: "n-1", TicketID: id, Body: body, Internal: internal}, f.err
}

func (f *fakeAPI) ListNotes(ctx context.Context, token, id string) ([]domain.Note, error) {
	return nil, f.err
}

func (f *fakeAPI) ListClients(ctx context.Context, token string, query upstream.ClientQuery) ([]domain.Client, error) {
	return nil, f.err
}

func (f *fakeAPI) GetClient(ctx context.Context, token, id string) (*domain.Client, error) {
	return &domain.Client{ID: id, Name: "Acme"}, f.err
}

func (f *fakeAPI) CreateClient(ctx context.Context, token string, input upstream.ClientInput) (*domain.Client, error) {
	return &domain.Client{ID: "c-new", Name: input.Name}, f.err
}

func (f *fakeAPI) UpdateClient(ctx context.Context, token, id string, input upstream.ClientInput) (*domain.Client, error) {
	return &domain.Client{ID: id, Name: input.Name}, f.err
}

func (f *fakeAPI) DeleteClient(ctx context.Context, token, id string) error { return f.err }

func (f *fakeAPI) GetOptionCatalog(ctx context.Context, token string) (*domain.OptionCatalog, error) {
	return &domain.OptionCatalog{}, f.err
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAPI) Logout(ctx context.Context, token string) error { return f.err }

func newTestApp(api *fakeAPI) *fiber.App {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	sessionCfg := config.SessionConfig{CookieName: testCookieName}
	engine := sla.NewEngine(sla.NewCalendar(time.UTC))

	optionsService := service.NewOptionsService(service.OptionsDependencies{
		API:    api,
		Logger: logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		API:        api,
		Options:    optionsService,
		Engine:     engine,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:     logger,
		Metrics:    metrics,
		Timeout:    5 * time.Second,
		Session:    sessionCfg,
		Dispatcher: dispatcher,
	}, session.NewMiddleware(sessionCfg))
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("test", nil),
		Session: handlers.NewSessionHandler(service.NewSessionService(api, logger), sessionCfg),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Clients: handlers.NewClientsHandler(service.NewClientService(api)),
		Options: handlers.NewOptionsHandler(optionsService),
		Metrics: metrics,
	})
	return app
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "session-token"})
	return req
}

func TestListTicketsRequiresSession(t *testing.T) {
	app := newTestApp(&fakeAPI{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tickets", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestListTicketsDecoratesDeadline(t *testing.T) {
	app := newTestApp(&fakeAPI{tickets: []domain.Ticket{
		{ID: "t-1", Subject: "printer on fire", Status: "new", CreatedAt: "2024-01-01T12:00:00Z"},
	}})

	resp, err := app.Test(withSession(httptest.NewRequest(http.MethodGet, "/api/tickets", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []struct {
			ID            string     `json:"id"`
			NextActionDue *time.Time `json:"next_action_due"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	require.NotNil(t, body.Data[0].NextActionDue)
	assert.Equal(t, time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC), body.Data[0].NextActionDue.UTC())
}

func TestUpstreamUnauthorizedClearsSessionCookie(t *testing.T) {
	app := newTestApp(&fakeAPI{err: util.NewUpstreamError(http.StatusUnauthorized, "token expired")})

	resp, err := app.Test(withSession(httptest.NewRequest(http.MethodGet, "/api/tickets", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cleared := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == testCookieName && cookie.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the session cookie to be expired")
}

func TestSessionMeWithoutCookieReturnsNull(t *testing.T) {
	app := newTestApp(&fakeAPI{user: &domain.User{ID: "u-1", Name: "Sam"}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/session/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "null", strings.TrimSpace(string(body.Data)))
}

func TestSessionMeReturnsUser(t *testing.T) {
	app := newTestApp(&fakeAPI{user: &domain.User{ID: "u-1", Name: "Sam", Email: "sam@example.com"}})

	resp, err := app.Test(withSession(httptest.NewRequest(http.MethodGet, "/api/session/me", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body.Data.ID)
	assert.Equal(t, "sam@example.com", body.Data.Email)
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(&fakeAPI{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
