package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNotGroupMember = errors.New("actor is not a member of the group")
	ErrNotOwner       = errors.New("actor does not own the transaction")
	ErrAlreadyMember  = errors.New("actor is already a member of the group")
	ErrGroupFull      = errors.New("group member limit reached")

	ErrEmptyUpdate         = errors.New("update would change nothing")
	ErrTransactionDeleted  = errors.New("transaction is deleted")
	ErrCheckpointTooOld    = errors.New("checkpoint is older than the changelog retention window")
	ErrPageLimitOutOfRange = errors.New("page limit out of range")
)
