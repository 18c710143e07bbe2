package models

import "time"

// Transaction is an expense record owned exclusively by its creator. Only the
// owner may mutate it; other group members observe it through the group
// changelog. A transaction belongs to at most one group at a time.
type Transaction struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Amount    int64     `json:"amount"` // minor currency units (cents)
	Currency  string    `json:"currency"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	GroupID   *string   `json:"group_id,omitempty"`
	Deleted   bool      `json:"deleted"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// InGroup reports whether the transaction is currently affiliated with the
// given group. Soft-deleted transactions are never considered in a group.
func (t Transaction) InGroup(groupID string) bool {
	return !t.Deleted && t.GroupID != nil && *t.GroupID == groupID
}

// TransactionDraft carries the caller-supplied fields for a new transaction.
type TransactionDraft struct {
	Amount   int64     `json:"amount"`
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Note     string    `json:"note,omitempty"`
	GroupID  *string   `json:"group_id,omitempty"`
}

// TransactionUpdate describes a partial edit of an existing transaction.
// Nil pointers leave the corresponding field untouched. Group affiliation is
// a three-way switch: GroupID set → move to that group, ClearGroup →
// unaffiliate, neither → keep the current affiliation.
type TransactionUpdate struct {
	Amount     *int64     `json:"amount,omitempty"`
	Currency   *string    `json:"currency,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Category   *string    `json:"category,omitempty"`
	Note       *string    `json:"note,omitempty"`
	GroupID    *string    `json:"group_id,omitempty"`
	ClearGroup bool       `json:"clear_group,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Currency == nil && u.Date == nil &&
		u.Category == nil && u.Note == nil && u.GroupID == nil && !u.ClearGroup
}
