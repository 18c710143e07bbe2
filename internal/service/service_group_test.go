package service

import (
	"context"
	"testing"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroupService(groups *stubGroupRepository, txns *stubTransactionRepository) *groupService {
	if groups == nil {
		groups = &stubGroupRepository{}
	}
	if txns == nil {
		txns = &stubTransactionRepository{}
	}
	return &groupService{
		groupRepository:       groups,
		transactionRepository: txns,
		idGenerator:           utils.NewUUIDGenerator(),
		memberLimit:           models.DefaultMemberLimit,
		logger:                logger.Nop(),
	}
}

func TestCreateGroup(t *testing.T) {
	svc := newTestGroupService(nil, nil)

	created, err := svc.CreateGroup(context.Background(), 7, "trip to valpo")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(7), created.OwnerID)

	_, err = svc.CreateGroup(context.Background(), 7, "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestJoinGroup(t *testing.T) {
	var added []int64
	groups := &stubGroupRepository{
		getGroupFn: memberGroup("g1", 7, 7, 8),
		addMemberFn: func(ctx context.Context, groupID string, userID int64) error {
			added = append(added, userID)
			return nil
		},
	}
	svc := newTestGroupService(groups, nil)

	require.NoError(t, svc.JoinGroup(context.Background(), 9, "g1"))
	assert.Equal(t, []int64{9}, added)

	// joining twice is rejected
	err := svc.JoinGroup(context.Background(), 7, "g1")
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoinGroup_FullGroupRejected(t *testing.T) {
	members := make([]int64, models.DefaultMemberLimit)
	for i := range members {
		members[i] = int64(i + 1)
	}
	groups := &stubGroupRepository{
		getGroupFn: func(ctx context.Context, id string) (models.Group, error) {
			return models.Group{ID: id, OwnerID: 1, MemberIDs: members}, nil
		},
	}
	svc := newTestGroupService(groups, nil)

	err := svc.JoinGroup(context.Background(), 99, "g1")
	require.ErrorIs(t, err, ErrGroupFull)
}

func TestLeaveGroup_UnaffiliatesOwnedTransactions(t *testing.T) {
	owned := []models.Transaction{
		txn("t1", 2, groupPtr("g1"), false),
		txn("t2", 5, groupPtr("g1"), false),
	}
	var saved []savedMutation
	txns := &stubTransactionRepository{
		listOwnerGroupTransactionsFn: func(ctx context.Context, groupID string, ownerID int64) ([]models.Transaction, error) {
			assert.Equal(t, "g1", groupID)
			assert.Equal(t, int64(7), ownerID)
			return owned, nil
		},
		saveWithEntriesFn: func(ctx context.Context, transaction models.Transaction, entries []models.ChangelogEntry) error {
			saved = append(saved, savedMutation{txn: transaction, entries: entries})
			return nil
		},
	}
	groups := &stubGroupRepository{getGroupFn: memberGroup("g1", 8, 8, 7)}
	svc := newTestGroupService(groups, txns)

	require.NoError(t, svc.LeaveGroup(context.Background(), 7, "g1"))

	require.Len(t, saved, 2)
	for i, s := range saved {
		assert.Nil(t, s.txn.GroupID, "transaction %d must lose its affiliation", i)
		assert.Equal(t, owned[i].Version+1, s.txn.Version)
		require.Len(t, s.entries, 1)
		assert.Equal(t, models.EntryRemoved, s.entries[0].Kind)
		assert.Equal(t, "g1", s.entries[0].GroupID)
	}
}

func TestLeaveGroup_OwnerLeavingTransfersOwnership(t *testing.T) {
	var transferredTo int64
	groups := &stubGroupRepository{
		getGroupFn: memberGroup("g1", 7, 7, 8, 9),
		removeMemberFn: func(ctx context.Context, groupID string, userID int64) (bool, error) {
			return false, nil
		},
		transferOwnershipFn: func(ctx context.Context, groupID string, newOwnerID int64) error {
			transferredTo = newOwnerID
			return nil
		},
	}
	svc := newTestGroupService(groups, nil)

	require.NoError(t, svc.LeaveGroup(context.Background(), 7, "g1"))
	assert.Equal(t, int64(8), transferredTo)
}

func TestLeaveGroup_LastMemberDeletesGroup(t *testing.T) {
	var transferCalled bool
	groups := &stubGroupRepository{
		getGroupFn: memberGroup("g1", 7, 7),
		removeMemberFn: func(ctx context.Context, groupID string, userID int64) (bool, error) {
			return true, nil
		},
		transferOwnershipFn: func(ctx context.Context, groupID string, newOwnerID int64) error {
			transferCalled = true
			return nil
		},
	}
	svc := newTestGroupService(groups, nil)

	require.NoError(t, svc.LeaveGroup(context.Background(), 7, "g1"))
	assert.False(t, transferCalled, "a deleted group has no owner to transfer")
}

func TestLeaveGroup_NonMemberRejected(t *testing.T) {
	groups := &stubGroupRepository{getGroupFn: memberGroup("g1", 7, 7)}
	svc := newTestGroupService(groups, nil)

	err := svc.LeaveGroup(context.Background(), 99, "g1")
	require.ErrorIs(t, err, ErrNotGroupMember)
}

func TestGetGroup_MembershipEnforced(t *testing.T) {
	groups := &stubGroupRepository{getGroupFn: memberGroup("g1", 7, 7, 8)}
	svc := newTestGroupService(groups, nil)

	got, err := svc.GetGroup(context.Background(), 8, "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", got.ID)

	_, err = svc.GetGroup(context.Background(), 99, "g1")
	require.ErrorIs(t, err, ErrNotGroupMember)
}
