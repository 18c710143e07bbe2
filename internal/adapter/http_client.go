package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/boletapp/gastify-sync/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClientConfig carries the settings of the HTTP server adapter.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs a [ServerAdapter] speaking the server's
// REST API over resty.
func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return h.adoptAuthResponse(resp, user)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return h.adoptAuthResponse(resp, user)
}

func (h *httpServerAdapter) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"name": name}).
		Post("/api/groups/")
	if err != nil {
		return models.Group{}, fmt.Errorf("create group request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Group{}, err
	}

	var group models.Group
	if err = json.Unmarshal(resp.Body(), &group); err != nil {
		return models.Group{}, fmt.Errorf("decode create group response: %w", err)
	}
	return group, nil
}

func (h *httpServerAdapter) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	resp, err := h.authedRequest(ctx).Get("/api/groups/" + groupID)
	if err != nil {
		return models.Group{}, fmt.Errorf("get group request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Group{}, err
	}

	var group models.Group
	if err = json.Unmarshal(resp.Body(), &group); err != nil {
		return models.Group{}, fmt.Errorf("decode group response: %w", err)
	}
	return group, nil
}

func (h *httpServerAdapter) JoinGroup(ctx context.Context, groupID string) error {
	resp, err := h.authedRequest(ctx).Post("/api/groups/" + groupID + "/join")
	if err != nil {
		return fmt.Errorf("join group request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) LeaveGroup(ctx context.Context, groupID string) error {
	resp, err := h.authedRequest(ctx).Post("/api/groups/" + groupID + "/leave")
	if err != nil {
		return fmt.Errorf("leave group request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		Post("/api/transactions/")
	if err != nil {
		return models.Transaction{}, fmt.Errorf("create transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transaction{}, err
	}

	var txn models.Transaction
	if err = json.Unmarshal(resp.Body(), &txn); err != nil {
		return models.Transaction{}, fmt.Errorf("decode create transaction response: %w", err)
	}
	return txn, nil
}

func (h *httpServerAdapter) UpdateTransaction(ctx context.Context, transactionID string, update models.TransactionUpdate) (models.Transaction, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Patch("/api/transactions/" + transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("update transaction request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transaction{}, err
	}

	var txn models.Transaction
	if err = json.Unmarshal(resp.Body(), &txn); err != nil {
		return models.Transaction{}, fmt.Errorf("decode update transaction response: %w", err)
	}
	return txn, nil
}

func (h *httpServerAdapter) DeleteTransaction(ctx context.Context, transactionID string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/transactions/" + transactionID)
	if err != nil {
		return fmt.Errorf("delete transaction request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) FetchChangelog(ctx context.Context, groupID string, since time.Time) (models.ChangelogResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("since", formatSince(since)).
		Get("/api/sync/" + groupID + "/changelog")
	if err != nil {
		return models.ChangelogResponse{}, fmt.Errorf("changelog request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangelogResponse{}, err
	}

	var page models.ChangelogResponse
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.ChangelogResponse{}, fmt.Errorf("decode changelog response: %w", err)
	}
	return page, nil
}

func (h *httpServerAdapter) CheckPending(ctx context.Context, groupID string, since time.Time) (bool, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("since", formatSince(since)).
		Get("/api/sync/" + groupID + "/pending")
	if err != nil {
		return false, fmt.Errorf("pending request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	var pending models.PendingResponse
	if err = json.Unmarshal(resp.Body(), &pending); err != nil {
		return false, fmt.Errorf("decode pending response: %w", err)
	}
	return pending.Pending, nil
}

func (h *httpServerAdapter) FetchReconcileFeed(ctx context.Context, groupID string) (models.ReconcileResponse, error) {
	resp, err := h.authedRequest(ctx).Get("/api/sync/" + groupID + "/reconcile")
	if err != nil {
		return models.ReconcileResponse{}, fmt.Errorf("reconcile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ReconcileResponse{}, err
	}

	var feed models.ReconcileResponse
	if err = json.Unmarshal(resp.Body(), &feed); err != nil {
		return models.ReconcileResponse{}, fmt.Errorf("decode reconcile response: %w", err)
	}
	return feed, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) adoptAuthResponse(resp *resty.Response, user models.User) (models.User, error) {
	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("parse user id: %w", err)
	}

	h.SetToken(token)
	return models.User{UserID: userID, Login: user.Login, Name: user.Name}, nil
}

// formatSince renders the checkpoint for the since query parameter. The zero
// time travels as the empty string, which the server reads as "from the
// beginning".
func formatSince(since time.Time) string {
	if since.IsZero() {
		return ""
	}
	return since.UTC().Format(time.RFC3339Nano)
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
