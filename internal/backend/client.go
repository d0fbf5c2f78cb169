// Package backend wraps the helpdesk REST API. Every call distinguishes
// three outcomes: success with payload, an HTTP-level failure carrying the
// backend's error text, and a transport failure where the backend never
// answered. Failures are terminal for the triggering user action; nothing
// here retries.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

// Client issues authenticated requests against the helpdesk backend.
type Client struct {
	http   *req.Client
	logger *zap.Logger
}

// NewClient builds a client for the configured backend. Retries are
// deliberately disabled: a failed call surfaces to the user, who retries
// manually.
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	httpClient := req.C().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout())

	return &Client{http: httpClient, logger: logger}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type authEnvelope struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

type ticketsEnvelope struct {
	Tickets []domain.Ticket `json:"tickets"`
}

type createTicketEnvelope struct {
	Message      string            `json:"message"`
	Ticket       domain.Ticket     `json:"ticket"`
	AIPrediction domain.Prediction `json:"ai_prediction"`
}

type usersEnvelope struct {
	Users []domain.User `json:"users"`
}

type activitiesEnvelope struct {
	Activities []domain.Activity `json:"activities"`
}

type predictionEnvelope struct {
	Prediction domain.Prediction `json:"prediction"`
}

// Login authenticates an end-user and returns the issued token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	var out authEnvelope
	err := c.call(c.request(ctx, "").
		SetBody(map[string]string{"email": email, "password": password}), "POST", "/auth/login", &out)
	if err != nil {
		return "", domain.User{}, err
	}
	return out.AccessToken, out.User, nil
}

// Signup registers a new account; the backend logs the user straight in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, domain.User, error) {
	var out authEnvelope
	err := c.call(c.request(ctx, "").
		SetBody(map[string]string{"name": name, "email": email, "password": password}), "POST", "/auth/signup", &out)
	if err != nil {
		return "", domain.User{}, err
	}
	return out.AccessToken, out.User, nil
}

// ListTickets fetches the caller's tickets.
func (c *Client) ListTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	var out ticketsEnvelope
	if err := c.call(c.request(ctx, token), "GET", "/tickets", &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

// CreateTicket submits a draft; the backend classifies it and returns the
// stored ticket plus the prediction it applied.
func (c *Client) CreateTicket(ctx context.Context, token, title, description string) (domain.Ticket, domain.Prediction, error) {
	var out createTicketEnvelope
	err := c.call(c.request(ctx, token).
		SetBody(map[string]string{"title": title, "description": description}), "POST", "/tickets/create", &out)
	if err != nil {
		return domain.Ticket{}, domain.Prediction{}, err
	}
	return out.Ticket, out.AIPrediction, nil
}

// UpdateTicketStatus moves a ticket along its lifecycle.
func (c *Client) UpdateTicketStatus(ctx context.Context, token string, id int, status domain.TicketStatus) error {
	return c.call(c.request(ctx, token).
		SetBody(map[string]string{"status": string(status)}), "PUT", fmt.Sprintf("/tickets/%d/status", id), nil)
}

// ListActivities fetches the caller's recent activity lines.
func (c *Client) ListActivities(ctx context.Context, token string, limit int) ([]domain.Activity, error) {
	var out activitiesEnvelope
	err := c.call(c.request(ctx, token).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)), "GET", "/user/activities", &out)
	if err != nil {
		return nil, err
	}
	return out.Activities, nil
}

// Predict asks the backend classifier for a category and priority
// suggestion on a draft description.
func (c *Client) Predict(ctx context.Context, token, text string) (domain.Prediction, error) {
	var out predictionEnvelope
	err := c.call(c.request(ctx, token).
		SetBody(map[string]string{"text": text}), "POST", "/ai/predict", &out)
	if err != nil {
		return domain.Prediction{}, err
	}
	return out.Prediction, nil
}

// AdminListUsers fetches all users with their backend-computed ticket counts.
func (c *Client) AdminListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var out usersEnvelope
	if err := c.call(c.request(ctx, token), "GET", "/admin/users", &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// AdminDeleteUser removes a user account.
func (c *Client) AdminDeleteUser(ctx context.Context, token string, id int) error {
	return c.call(c.request(ctx, token), "DELETE", fmt.Sprintf("/admin/users/%d", id), nil)
}

// AdminListTickets fetches every ticket across all users.
func (c *Client) AdminListTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	var out ticketsEnvelope
	if err := c.call(c.request(ctx, token), "GET", "/admin/tickets", &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

// AdminUpdateTicket edits a ticket's category, priority and status.
func (c *Client) AdminUpdateTicket(ctx context.Context, token string, id int, category string, priority domain.TicketPriority, status domain.TicketStatus) error {
	return c.call(c.request(ctx, token).
		SetBody(map[string]string{
			"category": category,
			"priority": string(priority),
			"status":   string(status),
		}), "PUT", fmt.Sprintf("/admin/tickets/%d", id), nil)
}

// AdminDeleteTicket removes a ticket.
func (c *Client) AdminDeleteTicket(ctx context.Context, token string, id int) error {
	return c.call(c.request(ctx, token), "DELETE", fmt.Sprintf("/admin/tickets/%d", id), nil)
}

func (c *Client) request(ctx context.Context, token string) *req.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetBearerAuthToken(token)
	}
	return r
}

// call runs the request and maps the three outcomes onto the error
// taxonomy. out may be nil when the payload is not needed.
func (c *Client) call(r *req.Request, method, path string, out any) error {
	var backendErr errorBody
	r.SetErrorResult(&backendErr)
	if out != nil {
		r.SetSuccessResult(out)
	}

	resp, err := r.Send(method, path)
	if err != nil {
		c.logger.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return apperrors.NewBackendUnreachable(err)
	}

	if resp.IsErrorState() {
		message := backendErr.Error
		if message == "" {
			message = backendErr.Message
		}
		c.logger.Info("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("backend_message", message))
		return apperrors.NewBackendError(message, resp.StatusCode)
	}
	return nil
}
