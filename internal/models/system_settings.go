package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerationLimits bounds the generator's retry loops
type GenerationLimits struct {
	FillGuard  int `bson:"fillGuard" json:"fillGuard"`   // draws allowed while filling one ticket
	AnyOfGuard int `bson:"anyOfGuard" json:"anyOfGuard"` // restarts allowed when the any-of rule fails
	NonceGuard int `bson:"nonceGuard" json:"nonceGuard"` // reseeds allowed per slot on a ledger collision
}

// SystemSettings represents system-wide settings stored alongside the collections
type SystemSettings struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	JackpotValue float64               `bson:"jackpotValue" json:"jackpotValue"`
	Payouts      map[PrizeTier]float64 `bson:"payouts,omitempty" json:"payouts,omitempty"`
	Limits       GenerationLimits      `bson:"limits" json:"limits"`
	CreatedAt    time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time             `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy    string                `bson:"updatedBy" json:"updatedBy"`
}

// PayoutTable merges the stored overrides onto the default table
func (s *SystemSettings) PayoutTable() PayoutTable {
	table := DefaultPayoutTable()
	for tier, v := range s.Payouts {
		table[tier] = v
	}
	return table
}
