package domain

import (
	"encoding/json"
	"time"
)

// ParticipantRole distinguishes which side of an engagement a battle
// report recipient stood on.
type ParticipantRole string

const (
	RoleAttacker  ParticipantRole = "attacker"
	RoleDefender  ParticipantRole = "defender"
	RoleSupporter ParticipantRole = "supporter"
)

// Participation is the recipient-specific slice of an engagement embedded
// in each battle report: the global outcome plus "your" units/losses/loot.
type Participation struct {
	Role         ParticipantRole `json:"role"`
	MovementID   int64           `json:"movementId,omitempty"`
	UnitsEngaged Units           `json:"unitsEngaged"`
	UnitsLost    Units           `json:"unitsLost"`
	LootCapacity float64         `json:"lootCapacity,omitempty"`
	LootShare    Resources       `json:"lootShare,omitempty"`
	Conquest     bool            `json:"conquest"`
}

// BattleReportPayload is the full engagement snapshot shared by every
// report generated from the same engagement, plus the per-recipient slice.
type BattleReportPayload struct {
	TargetVillageID int64 `json:"targetVillageId"`
	TargetName      string `json:"targetName,omitempty"`

	AttackerUnits  Units `json:"attackerUnits"`
	AttackerLosses Units `json:"attackerLosses"`
	DefenderUnits  Units `json:"defenderUnits"`
	DefenderLosses Units `json:"defenderLosses"`

	Luck          float64 `json:"luck"`
	AttackerWon   bool    `json:"attackerWon"`
	LoyaltyBefore float64 `json:"loyaltyBefore"`
	LoyaltyDamage float64 `json:"loyaltyDamage,omitempty"`
	Conquered     bool    `json:"conquered"`

	Recipient Participation `json:"recipient"`
}

// BattleReport is the append-only message delivered to a recipient's inbox
// for their participation in one engagement. Mirrors the source's
// BattleMessage, whose battle_data is the JSON-serialised payload.
type BattleReport struct {
	ID                string
	RecipientPlayerID string
	CreatedAt         time.Time
	Message           string
	Payload           BattleReportPayload
}

// PayloadJSON marshals the report's payload for Inbox.deliver.
func (r *BattleReport) PayloadJSON() (string, error) {
	b, err := json.Marshal(r.Payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
