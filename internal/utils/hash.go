package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// EventID derives the deterministic identifier of one logical changelog
// event from the mutation that caused it.
//
// A retried trigger execution (at-least-once delivery) recomputes the same
// id, so the changelog store can deduplicate the append instead of writing
// a second entry. The group id participates because an affiliation change
// emits two entries (REMOVED in the old group, ADDED in the new) for the
// same transaction version, and those must not collide.
func EventID(transactionID string, version int64, kind string, groupID string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%s:%s", transactionID, version, kind, groupID))
	return hex.EncodeToString(sum[:])
}
