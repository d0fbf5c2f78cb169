package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 2}, zap.NewNop())
}

func TestLoginSuccess(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"user":         map[string]any{"id": 7, "name": "Alice", "email": "alice@example.com"},
		})
	}))

	token, user, err := client.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestBackendErrorSurfacesMessage(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))

	_, _, err := client.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "BACKEND_ERROR", domainErr.Code)
	assert.Equal(t, "Invalid credentials", domainErr.Message)
	assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 1}, zap.NewNop())

	_, err := client.ListTickets(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnreachable(err))
}

func TestListTicketsSendsBearer(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tickets": []map[string]any{
				{"id": 1, "ticket_number": "TKT-001", "status": "Open", "priority": "High"},
			},
		})
	}))

	list, err := client.ListTickets(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "TKT-001", list[0].TicketNumber)
	assert.Equal(t, domain.TicketStatusOpen, list[0].Status)
}

func TestCreateTicketReturnsPrediction(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets/create", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "created",
			"ticket":  map[string]any{"id": 9, "ticket_number": "TKT-009"},
			"ai_prediction": map[string]any{
				"department": "Technical",
				"priority":   "High",
			},
		})
	}))

	ticket, prediction, err := client.CreateTicket(context.Background(), "tok", "Title", "Description")
	require.NoError(t, err)
	assert.Equal(t, 9, ticket.ID)
	assert.Equal(t, "Technical", prediction.Department)
	assert.Equal(t, "High", prediction.Priority)
}

func TestAdminUpdateTicketSendsFields(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/tickets/5", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Billing", body["category"])
		assert.Equal(t, "Low", body["priority"])
		assert.Equal(t, "Closed", body["status"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "updated"})
	}))

	err := client.AdminUpdateTicket(context.Background(), "admin_token", 5,
		"Billing", domain.TicketPriorityLow, domain.TicketStatusClosed)
	require.NoError(t, err)
}

func TestErrorWithoutBodyGetsFallbackMessage(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListTickets(context.Background(), "tok")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "BACKEND_ERROR", domainErr.Code)
	assert.NotEmpty(t, domainErr.Message)
}
