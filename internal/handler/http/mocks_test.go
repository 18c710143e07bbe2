package http

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
	"github.com/go-chi/chi/v5"
)

type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockGroupService struct {
	createGroupFn func(ctx context.Context, actorID int64, name string) (models.Group, error)
	getGroupFn    func(ctx context.Context, actorID int64, groupID string) (models.Group, error)
	joinGroupFn   func(ctx context.Context, actorID int64, groupID string) error
	leaveGroupFn  func(ctx context.Context, actorID int64, groupID string) error
}

func (m *mockGroupService) CreateGroup(ctx context.Context, actorID int64, name string) (models.Group, error) {
	return m.createGroupFn(ctx, actorID, name)
}

func (m *mockGroupService) GetGroup(ctx context.Context, actorID int64, groupID string) (models.Group, error) {
	return m.getGroupFn(ctx, actorID, groupID)
}

func (m *mockGroupService) JoinGroup(ctx context.Context, actorID int64, groupID string) error {
	return m.joinGroupFn(ctx, actorID, groupID)
}

func (m *mockGroupService) LeaveGroup(ctx context.Context, actorID int64, groupID string) error {
	return m.leaveGroupFn(ctx, actorID, groupID)
}

type mockTransactionService struct {
	createFn func(ctx context.Context, actorID int64, draft models.TransactionDraft) (models.Transaction, error)
	updateFn func(ctx context.Context, actorID int64, transactionID string, update models.TransactionUpdate) (models.Transaction, error)
	deleteFn func(ctx context.Context, actorID int64, transactionID string) error
	getFn    func(ctx context.Context, actorID int64, transactionID string) (models.Transaction, error)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, actorID int64, draft models.TransactionDraft) (models.Transaction, error) {
	return m.createFn(ctx, actorID, draft)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, actorID int64, transactionID string, update models.TransactionUpdate) (models.Transaction, error) {
	return m.updateFn(ctx, actorID, transactionID, update)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, actorID int64, transactionID string) error {
	return m.deleteFn(ctx, actorID, transactionID)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, actorID int64, transactionID string) (models.Transaction, error) {
	return m.getFn(ctx, actorID, transactionID)
}

type mockChangelogService struct {
	queryEntriesFn  func(ctx context.Context, actorID int64, groupID string, since time.Time) (models.ChangelogResponse, error)
	hasPendingFn    func(ctx context.Context, actorID int64, groupID string, since time.Time) (bool, error)
	reconcileFeedFn func(ctx context.Context, actorID int64, groupID string) (models.ReconcileResponse, error)
}

func (m *mockChangelogService) QueryEntries(ctx context.Context, actorID int64, groupID string, since time.Time) (models.ChangelogResponse, error) {
	return m.queryEntriesFn(ctx, actorID, groupID, since)
}

func (m *mockChangelogService) HasPending(ctx context.Context, actorID int64, groupID string, since time.Time) (bool, error) {
	return m.hasPendingFn(ctx, actorID, groupID, since)
}

func (m *mockChangelogService) ReconcileFeed(ctx context.Context, actorID int64, groupID string) (models.ReconcileResponse, error) {
	return m.reconcileFeedFn(ctx, actorID, groupID)
}

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services: services,
		logger:   logger.Nop(),
	}
}

func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, utils.UserIDCtxKey, userID)
}

// withURLParam injects a chi route parameter so handlers can be called
// directly without going through the router.
func withURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}
