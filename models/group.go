package models

import "time"

// DefaultMemberLimit bounds group size. Gastify groups are household-scale
// by design, not communities.
const DefaultMemberLimit = 20

// Group is a shared context that multiple users can affiliate transactions
// with. Membership and ownership changes bump MembershipVersion so clients
// can detect stale member lists cheaply.
type Group struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OwnerID           int64     `json:"owner_id"`
	MemberIDs         []int64   `json:"member_ids"`
	MembershipVersion int64     `json:"membership_version"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasMember reports whether userID currently belongs to the group.
func (g Group) HasMember(userID int64) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
