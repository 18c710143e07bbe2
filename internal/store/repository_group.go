package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/models"
)

// groupRepository is the PostgreSQL-backed implementation of
// [GroupRepository]. Membership mutations run inside a database transaction
// so the member row change and the membership-version bump are never
// observed apart.
type groupRepository struct {
	*DB
	logger *logger.Logger
}

// NewGroupRepository constructs a [GroupRepository] backed by the provided
// database connection and logger.
func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	return &groupRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateGroup inserts the group row and the creator's membership row in one
// transaction. The creator becomes both owner and first member.
func (g *groupRepository) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	log := logger.FromContext(ctx)

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createGroup, group.ID, group.Name, group.OwnerID)
	if err = row.Scan(&group.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "groupRepository.CreateGroup").
			Str("group_id", group.ID).
			Msg("failed to insert group")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, addGroupMember, group.ID, group.OwnerID); err != nil {
		log.Err(err).
			Str("func", "groupRepository.CreateGroup").
			Str("group_id", group.ID).
			Msg("failed to insert owner membership")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	group.MembershipVersion = 1
	group.MemberIDs = []int64{group.OwnerID}
	return group, nil
}

// GetGroup fetches the group row and its member ids.
func (g *groupRepository) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	log := logger.FromContext(ctx)

	row := g.DB.QueryRowContext(ctx, getGroup, groupID)

	var group models.Group
	err := row.Scan(&group.ID, &group.Name, &group.OwnerID, &group.MembershipVersion, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, ErrGroupNotFound
		}
		log.Err(err).
			Str("func", "groupRepository.GetGroup").
			Str("group_id", groupID).
			Msg("failed to scan group row")
		return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rows, err := g.DB.QueryContext(ctx, getGroupMembers, groupID)
	if err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID int64
		if err = rows.Scan(&memberID); err != nil {
			return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		group.MemberIDs = append(group.MemberIDs, memberID)
	}
	if err = rows.Err(); err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return group, nil
}

// AddMember inserts the membership row and bumps the membership version.
func (g *groupRepository) AddMember(ctx context.Context, groupID string, userID int64) error {
	log := logger.FromContext(ctx)

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, addGroupMember, groupID, userID); err != nil {
		log.Err(err).
			Str("func", "groupRepository.AddMember").
			Str("group_id", groupID).
			Int64("user_id", userID).
			Msg("failed to insert membership")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = g.bumpVersion(ctx, tx, groupID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// RemoveMember deletes the membership row, bumps the version, and deletes
// the whole group once the member set is empty.
func (g *groupRepository) RemoveMember(ctx context.Context, groupID string, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, removeGroupMember, groupID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.RemoveMember").
			Str("group_id", groupID).
			Int64("user_id", userID).
			Msg("failed to delete membership")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return false, ErrGroupNotFound
	}

	var remaining int64
	if err = tx.QueryRowContext(ctx, countGroupMembers, groupID).Scan(&remaining); err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	groupDeleted := remaining == 0
	if groupDeleted {
		if _, err = tx.ExecContext(ctx, deleteGroup, groupID); err != nil {
			return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	} else {
		if err = g.bumpVersion(ctx, tx, groupID); err != nil {
			return false, err
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return groupDeleted, nil
}

// TransferOwnership reassigns the owner and bumps the membership version.
func (g *groupRepository) TransferOwnership(ctx context.Context, groupID string, newOwnerID int64) error {
	log := logger.FromContext(ctx)

	result, err := g.DB.ExecContext(ctx, transferGroupOwnership, groupID, newOwnerID)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.TransferOwnership").
			Str("group_id", groupID).
			Int64("new_owner_id", newOwnerID).
			Msg("failed to transfer ownership")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (g *groupRepository) bumpVersion(ctx context.Context, tx *sql.Tx, groupID string) error {
	result, err := tx.ExecContext(ctx, bumpMembershipVersion, groupID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrGroupNotFound
	}
	return nil
}
