package service

import (
	"context"
	"time"

	"github.com/boletapp/gastify-sync/models"
)

// Hand-written stubs for the store interfaces. Each method delegates to an
// optional func field; unset fields return zero values.

type stubUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByLoginFn func(ctx context.Context, login string) (models.User, error)
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if s.createUserFn != nil {
		return s.createUserFn(ctx, user)
	}
	return user, nil
}

func (s *stubUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if s.findUserByLoginFn != nil {
		return s.findUserByLoginFn(ctx, login)
	}
	return models.User{}, nil
}

type stubGroupRepository struct {
	createGroupFn       func(ctx context.Context, group models.Group) (models.Group, error)
	getGroupFn          func(ctx context.Context, groupID string) (models.Group, error)
	addMemberFn         func(ctx context.Context, groupID string, userID int64) error
	removeMemberFn      func(ctx context.Context, groupID string, userID int64) (bool, error)
	transferOwnershipFn func(ctx context.Context, groupID string, newOwnerID int64) error
}

func (s *stubGroupRepository) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	if s.createGroupFn != nil {
		return s.createGroupFn(ctx, group)
	}
	return group, nil
}

func (s *stubGroupRepository) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	if s.getGroupFn != nil {
		return s.getGroupFn(ctx, groupID)
	}
	return models.Group{}, nil
}

func (s *stubGroupRepository) AddMember(ctx context.Context, groupID string, userID int64) error {
	if s.addMemberFn != nil {
		return s.addMemberFn(ctx, groupID, userID)
	}
	return nil
}

func (s *stubGroupRepository) RemoveMember(ctx context.Context, groupID string, userID int64) (bool, error) {
	if s.removeMemberFn != nil {
		return s.removeMemberFn(ctx, groupID, userID)
	}
	return false, nil
}

func (s *stubGroupRepository) TransferOwnership(ctx context.Context, groupID string, newOwnerID int64) error {
	if s.transferOwnershipFn != nil {
		return s.transferOwnershipFn(ctx, groupID, newOwnerID)
	}
	return nil
}

type stubTransactionRepository struct {
	getTransactionFn             func(ctx context.Context, transactionID string) (models.Transaction, error)
	saveWithEntriesFn            func(ctx context.Context, transaction models.Transaction, entries []models.ChangelogEntry) error
	listGroupTransactionsFn      func(ctx context.Context, groupID string, since time.Time) ([]models.Transaction, error)
	listOwnerGroupTransactionsFn func(ctx context.Context, groupID string, ownerID int64) ([]models.Transaction, error)
}

func (s *stubTransactionRepository) GetTransaction(ctx context.Context, transactionID string) (models.Transaction, error) {
	if s.getTransactionFn != nil {
		return s.getTransactionFn(ctx, transactionID)
	}
	return models.Transaction{}, nil
}

func (s *stubTransactionRepository) SaveWithEntries(ctx context.Context, transaction models.Transaction, entries []models.ChangelogEntry) error {
	if s.saveWithEntriesFn != nil {
		return s.saveWithEntriesFn(ctx, transaction, entries)
	}
	return nil
}

func (s *stubTransactionRepository) ListGroupTransactions(ctx context.Context, groupID string, since time.Time) ([]models.Transaction, error) {
	if s.listGroupTransactionsFn != nil {
		return s.listGroupTransactionsFn(ctx, groupID, since)
	}
	return nil, nil
}

func (s *stubTransactionRepository) ListOwnerGroupTransactions(ctx context.Context, groupID string, ownerID int64) ([]models.Transaction, error) {
	if s.listOwnerGroupTransactionsFn != nil {
		return s.listOwnerGroupTransactionsFn(ctx, groupID, ownerID)
	}
	return nil, nil
}

type stubChangelogRepository struct {
	queryEntriesFn    func(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error)
	hasEntriesAfterFn func(ctx context.Context, groupID string, since time.Time) (bool, error)
	pruneExpiredFn    func(ctx context.Context, before time.Time) (int64, error)
}

func (s *stubChangelogRepository) QueryEntries(ctx context.Context, groupID string, since time.Time, limit int) ([]models.ChangelogEntry, error) {
	if s.queryEntriesFn != nil {
		return s.queryEntriesFn(ctx, groupID, since, limit)
	}
	return nil, nil
}

func (s *stubChangelogRepository) HasEntriesAfter(ctx context.Context, groupID string, since time.Time) (bool, error) {
	if s.hasEntriesAfterFn != nil {
		return s.hasEntriesAfterFn(ctx, groupID, since)
	}
	return false, nil
}

func (s *stubChangelogRepository) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	if s.pruneExpiredFn != nil {
		return s.pruneExpiredFn(ctx, before)
	}
	return 0, nil
}

// memberGroup builds a GetGroup stub answer whose member set includes the
// given users.
func memberGroup(groupID string, ownerID int64, memberIDs ...int64) func(ctx context.Context, id string) (models.Group, error) {
	return func(ctx context.Context, id string) (models.Group, error) {
		return models.Group{
			ID:        groupID,
			Name:      "trip",
			OwnerID:   ownerID,
			MemberIDs: memberIDs,
		}, nil
	}
}
