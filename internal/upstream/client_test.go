package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/config"
	"github.com/stacktrack/stacktrack/pkg/util"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New(config.UpstreamConfig{
		BaseURL:        server.URL,
		PathPrefix:     "/api/v1",
		TimeoutSeconds: 5,
	}, zap.NewNop(), nil)
	return client, server
}

func TestListTicketsForwardsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"t-1","subject":"printer on fire","status":"new"}]}`))
	}))

	tickets, err := client.ListTickets(context.Background(), "session-token", TicketQuery{})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "t-1", tickets[0].ID)
	assert.Equal(t, "Bearer session-token", gotAuth)
	assert.Equal(t, "/api/v1/tickets", gotPath)
}

func TestTicketQuerySerialization(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	_, err := client.ListTickets(context.Background(), "tok", TicketQuery{
		Statuses: []string{"new", "in_progress"},
		ClientID: "c-9",
		Page:     2,
		PageSize: 50,
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "status=new%2Cin_progress")
	assert.Contains(t, gotQuery, "client_id=c-9")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "page_size=50")
}

func TestUpstreamErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"message":"ticket already closed"}}`))
	}))

	_, err := client.ChangeTicketStatus(context.Background(), "tok", "t-1", "closed", "")
	require.Error(t, err)

	domainErr := util.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "ticket already closed", domainErr.Message)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestUpstreamErrorFlatMessageShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such ticket"}`))
	}))

	_, err := client.GetTicket(context.Background(), "tok", "missing")
	require.Error(t, err)

	domainErr := util.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "no such ticket", domainErr.Message)
}

func TestUnauthorizedIsDetectable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"token expired"}}`))
	}))

	_, err := client.Me(context.Background(), "stale-token")
	require.Error(t, err)
	assert.True(t, util.IsUnauthorized(err))
}

func TestDeleteTicketSendsNoBodyAndAcceptsNoContent(t *testing.T) {
	var gotMethod string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteTicket(context.Background(), "tok", "t-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestUnreachableUpstreamMapsToBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := New(config.UpstreamConfig{
		BaseURL:        server.URL,
		PathPrefix:     "/api/v1",
		TimeoutSeconds: 1,
	}, zap.NewNop(), nil)

	_, err := client.ListTickets(context.Background(), "tok", TicketQuery{})
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
}
