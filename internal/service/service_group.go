package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/metrics"
	"github.com/boletapp/gastify-sync/internal/store"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
)

// groupService is the concrete implementation of GroupService.
type groupService struct {
	groupRepository       store.GroupRepository
	transactionRepository store.TransactionRepository
	idGenerator           *utils.UUIDGenerator
	memberLimit           int
	logger                *logger.Logger
}

// NewGroupService constructs a GroupService wired to the given repositories.
func NewGroupService(storages *store.Storages, logger *logger.Logger) GroupService {
	return &groupService{
		groupRepository:       storages.GroupRepository,
		transactionRepository: storages.TransactionRepository,
		idGenerator:           utils.NewUUIDGenerator(),
		memberLimit:           models.DefaultMemberLimit,
		logger:                logger,
	}
}

func (g *groupService) CreateGroup(ctx context.Context, actorID int64, name string) (models.Group, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return models.Group{}, ErrInvalidDataProvided
	}

	group := models.Group{
		ID:      g.idGenerator.Generate(),
		Name:    name,
		OwnerID: actorID,
	}

	created, err := g.groupRepository.CreateGroup(ctx, group)
	if err != nil {
		log.Err(err).Str("name", name).Msg("group creation failed")
		return models.Group{}, fmt.Errorf("group creation failed: %w", err)
	}

	return created, nil
}

func (g *groupService) GetGroup(ctx context.Context, actorID int64, groupID string) (models.Group, error) {
	group, err := g.groupRepository.GetGroup(ctx, groupID)
	if err != nil {
		return models.Group{}, fmt.Errorf("group lookup failed: %w", err)
	}
	if !group.HasMember(actorID) {
		return models.Group{}, ErrNotGroupMember
	}

	return group, nil
}

func (g *groupService) JoinGroup(ctx context.Context, actorID int64, groupID string) error {
	log := logger.FromContext(ctx)

	group, err := g.groupRepository.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("group lookup failed: %w", err)
	}
	if group.HasMember(actorID) {
		return ErrAlreadyMember
	}
	if len(group.MemberIDs) >= g.memberLimit {
		return ErrGroupFull
	}

	if err = g.groupRepository.AddMember(ctx, groupID, actorID); err != nil {
		log.Err(err).Str("group_id", groupID).Int64("user_id", actorID).Msg("join failed")
		return fmt.Errorf("join failed: %w", err)
	}

	return nil
}

// LeaveGroup removes the actor from the group. The departing member's live
// transactions in the group are unaffiliated first, each emitting a REMOVED
// entry, so the members who stay see them disappear through normal sync.
// If the departing actor owned the group, ownership passes to the
// longest-standing remaining member; the last member leaving deletes the
// group.
func (g *groupService) LeaveGroup(ctx context.Context, actorID int64, groupID string) error {
	log := logger.FromContext(ctx)

	group, err := g.groupRepository.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("group lookup failed: %w", err)
	}
	if !group.HasMember(actorID) {
		return ErrNotGroupMember
	}

	if err = g.unaffiliateTransactions(ctx, groupID, actorID); err != nil {
		return err
	}

	deleted, err := g.groupRepository.RemoveMember(ctx, groupID, actorID)
	if err != nil {
		log.Err(err).Str("group_id", groupID).Int64("user_id", actorID).Msg("leave failed")
		return fmt.Errorf("leave failed: %w", err)
	}

	if !deleted && group.OwnerID == actorID {
		if err = g.transferToRemainingMember(ctx, group, actorID); err != nil {
			return err
		}
	}

	if deleted {
		log.Info().Str("group_id", groupID).Msg("last member left, group deleted")
	}

	return nil
}

func (g *groupService) unaffiliateTransactions(ctx context.Context, groupID string, actorID int64) error {
	log := logger.FromContext(ctx)

	owned, err := g.transactionRepository.ListOwnerGroupTransactions(ctx, groupID, actorID)
	if err != nil {
		return fmt.Errorf("listing departing member's transactions failed: %w", err)
	}

	for _, prev := range owned {
		now := time.Now()
		next := prev
		next.GroupID = nil
		next.Version = prev.Version + 1
		next.UpdatedAt = now

		entries := EntriesForMutation(&prev, next, actorID, now)
		if err = g.transactionRepository.SaveWithEntries(ctx, next, entries); err != nil {
			log.Err(err).
				Str("group_id", groupID).
				Str("transaction_id", prev.ID).
				Msg("unaffiliating transaction failed")
			return fmt.Errorf("unaffiliating transaction failed: %w", err)
		}
		for _, entry := range entries {
			metrics.EntriesAppended.WithLabelValues(string(entry.Kind)).Inc()
		}
	}

	return nil
}

func (g *groupService) transferToRemainingMember(ctx context.Context, group models.Group, departedID int64) error {
	for _, memberID := range group.MemberIDs {
		if memberID == departedID {
			continue
		}
		if err := g.groupRepository.TransferOwnership(ctx, group.ID, memberID); err != nil {
			return fmt.Errorf("ownership transfer failed: %w", err)
		}
		return nil
	}
	return nil
}
