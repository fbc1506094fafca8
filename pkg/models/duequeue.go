package models

import "time"

// DueQueue identifies one of the three reconciliation worklists.
type DueQueue string

const (
	QueueSuspensionDue   DueQueue = "suspensions_due"
	QueueUnsuspensionDue DueQueue = "unsuspensions_due"
	QueueBanDue          DueQueue = "bans_due"
)

// DueEntry representa un documento mínimo en una colección "due".
// At most one entry per user per queue; the user id is the primary key.
// Category and Reason are carried only so a later drain can render the
// original notice for a user who was absent when the punishment was decided.
type DueEntry struct {
	DiscordID string    `bson:"_id" json:"discord_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
}
