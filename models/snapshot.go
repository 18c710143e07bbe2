package models

import "time"

// Snapshot is the shareable projection of a transaction that travels inside
// changelog entries and reconciliation feeds. It is denormalized on purpose:
// a client replaying the changelog never needs a follow-up fetch.
//
// Note and Category are pointers so that entries written by older schema
// versions (which may omit them) still decode and re-encode without
// inventing empty values.
type Snapshot struct {
	TransactionID string    `json:"transaction_id"`
	OwnerID       int64     `json:"owner_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Date          time.Time `json:"date"`
	Category      *string   `json:"category,omitempty"`
	Note          *string   `json:"note,omitempty"`
	Deleted       bool      `json:"deleted"`
	Version       int64     `json:"version"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SnapshotOf builds the shareable snapshot of a transaction's current state.
func SnapshotOf(t Transaction) Snapshot {
	s := Snapshot{
		TransactionID: t.ID,
		OwnerID:       t.OwnerID,
		Amount:        t.Amount,
		Currency:      t.Currency,
		Date:          t.Date,
		Deleted:       t.Deleted,
		Version:       t.Version,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Category != "" {
		c := t.Category
		s.Category = &c
	}
	if t.Note != "" {
		n := t.Note
		s.Note = &n
	}
	return s
}
