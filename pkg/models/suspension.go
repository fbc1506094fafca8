package models

import "time"

// InfractionCategory identifies one of the tiered punishment categories.
type InfractionCategory string

const (
	CategoryQuit     InfractionCategory = "quit"
	CategoryMinor    InfractionCategory = "minor"
	CategoryModerate InfractionCategory = "moderate"
	CategoryMajor    InfractionCategory = "major"
	CategoryExtreme  InfractionCategory = "extreme"
)

// FlatCategory identifies a flat-rate punishment that adds a fixed number of
// days without touching any tier.
type FlatCategory string

const (
	FlatOversub FlatCategory = "oversub"
	FlatComp    FlatCategory = "comp"
	FlatSmurf   FlatCategory = "smurf"
)

// TieredCategories returns the fixed set of tiered categories, in the order
// the sweepers walk them.
func TieredCategories() []InfractionCategory {
	return []InfractionCategory{
		CategoryQuit,
		CategoryMinor,
		CategoryModerate,
		CategoryMajor,
		CategoryExtreme,
	}
}

// IsTieredCategory reports whether name is one of the five tiered categories.
func IsTieredCategory(name string) bool {
	switch InfractionCategory(name) {
	case CategoryQuit, CategoryMinor, CategoryModerate, CategoryMajor, CategoryExtreme:
		return true
	}
	return false
}

// InfractionState holds the escalation state for one category of one user.
// Invariante: Tier == 0 si y solo si Decays == nil.
type InfractionState struct {
	Tier   int        `bson:"tier" json:"tier"`
	Decays *time.Time `bson:"decays" json:"decays"`
}

// AuditEntry es una entrada del historial de infracciones de un usuario
type AuditEntry struct {
	ID        string `bson:"id" json:"id"`
	Category  string `bson:"category" json:"category"`
	Tier      int    `bson:"tier" json:"tier"`
	Moderator string `bson:"moderator" json:"moderator"`
	Reason    string `bson:"reason" json:"reason"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// Suspension representa el documento completo en la colección "suspensions".
// One record per user, created lazily and never deleted; it doubles as the
// user's moderation history.
type Suspension struct {
	DiscordID      string          `bson:"discord_id" json:"discord_id"`
	Suspended      bool            `bson:"suspended" json:"suspended"`
	Ends           *time.Time      `bson:"ends" json:"ends"`
	SuspendedRoles []string        `bson:"suspendedRoles" json:"suspendedRoles"`
	Quit           InfractionState `bson:"quit" json:"quit"`
	Minor          InfractionState `bson:"minor" json:"minor"`
	Moderate       InfractionState `bson:"moderate" json:"moderate"`
	Major          InfractionState `bson:"major" json:"major"`
	Extreme        InfractionState `bson:"extreme" json:"extreme"`
	History        []AuditEntry    `bson:"history,omitempty" json:"history,omitempty"`
}

// NewSuspension returns a fresh, unsuspended record for a user.
func NewSuspension(discordID string) *Suspension {
	return &Suspension{
		DiscordID:      discordID,
		Suspended:      false,
		Ends:           nil,
		SuspendedRoles: []string{},
	}
}

// Infraction returns a pointer to the state of the given tiered category so
// callers can mutate it in place.
func (s *Suspension) Infraction(category InfractionCategory) *InfractionState {
	switch category {
	case CategoryQuit:
		return &s.Quit
	case CategoryMinor:
		return &s.Minor
	case CategoryModerate:
		return &s.Moderate
	case CategoryMajor:
		return &s.Major
	case CategoryExtreme:
		return &s.Extreme
	}
	return nil
}
