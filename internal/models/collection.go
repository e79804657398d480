package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerationMode records how a ticket's randomness was bootstrapped
type GenerationMode string

const (
	ModeSeeded  GenerationMode = "SEEDED"
	ModeEntropy GenerationMode = "ENTROPY"
)

// Provenance records enough to reproduce a ticket
type Provenance struct {
	Mode        GenerationMode `bson:"mode" json:"mode"`
	Seed        string         `bson:"seed,omitempty" json:"seed,omitempty"`
	Base        uint32         `bson:"base,omitempty" json:"base,omitempty"` // entropy base, ENTROPY mode only
	Slot        int            `bson:"slot" json:"slot"`
	Nonce       int            `bson:"nonce" json:"nonce"`
	Constraints Constraints    `bson:"constraints" json:"constraints"` // rules the batch was sampled under
}

// Ticket is a combination held in a collection
type Ticket struct {
	Combination Combination `bson:"combination" json:"combination"`
	Key         Key         `bson:"key" json:"key"`
	Frozen      bool        `bson:"frozen" json:"frozen"`
	Order       int         `bson:"order" json:"order"` // creation order, never reused within a collection
	Provenance  Provenance  `bson:"provenance" json:"provenance"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
}

// Collection is a named, ordered list of tickets
type Collection struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Tickets   []Ticket           `bson:"tickets" json:"tickets"`
	NextOrder int                `bson:"nextOrder" json:"nextOrder"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Keys returns the keys of every ticket in order
func (c *Collection) Keys() []Key {
	keys := make([]Key, len(c.Tickets))
	for i, t := range c.Tickets {
		keys[i] = t.Key
	}
	return keys
}

// Combinations returns every ticket's combination in order
func (c *Collection) Combinations() []Combination {
	out := make([]Combination, len(c.Tickets))
	for i, t := range c.Tickets {
		out[i] = t.Combination
	}
	return out
}

// TicketIndex returns the position of the ticket with key k, or -1
func (c *Collection) TicketIndex(k Key) int {
	for i, t := range c.Tickets {
		if t.Key == k {
			return i
		}
	}
	return -1
}

// GenerationRequest asks for Count new tickets in a collection
type GenerationRequest struct {
	Count       int         `json:"count" binding:"required,min=1"`
	Constraints Constraints `json:"constraints"`
	Seed        string      `json:"seed,omitempty"`
}

// RegenerateRequest asks for every unfrozen ticket to be replaced
type RegenerateRequest struct {
	Constraints Constraints `json:"constraints"`
	Seed        string      `json:"seed,omitempty"`
}

// TicketVerification is the outcome of replaying a ticket from its provenance
type TicketVerification struct {
	Key        Key         `json:"key"`
	Provenance Provenance  `json:"provenance"`
	Replayed   Combination `json:"replayed"`
	Reproduced bool        `json:"reproduced"`
}

// CreateCollectionRequest names a new collection
type CreateCollectionRequest struct {
	Name string `json:"name" binding:"required"`
}

// FreezeRequest sets a ticket's frozen flag
type FreezeRequest struct {
	Frozen bool `json:"frozen"`
}
