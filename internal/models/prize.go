package models

// PrizeTier is the prize bracket a ticket falls into after a draw
type PrizeTier string

const (
	Tier6      PrizeTier = "6"
	Tier5Plus1 PrizeTier = "5+1"
	Tier5      PrizeTier = "5"
	Tier4      PrizeTier = "4"
	Tier3      PrizeTier = "3"
	Tier2      PrizeTier = "2"
	TierNone   PrizeTier = "none"
)

// AllTiers lists tiers from the highest to the lowest
var AllTiers = []PrizeTier{Tier6, Tier5Plus1, Tier5, Tier4, Tier3, Tier2, TierNone}

// PayoutTable maps a tier to its average payout. Tier6 is ignored; the
// jackpot is always supplied by the caller.
type PayoutTable map[PrizeTier]float64

// DefaultPayoutTable holds the long-run average payouts per tier
func DefaultPayoutTable() PayoutTable {
	return PayoutTable{
		Tier5Plus1: 620000,
		Tier5:      32000,
		Tier4:      300,
		Tier3:      25,
		Tier2:      5,
		TierNone:   0,
	}
}

// TicketResult is the outcome of one ticket against a draw
type TicketResult struct {
	Key            Key       `json:"key"`
	Numbers        []int     `json:"numbers"`
	Hits           int       `json:"hits"`
	Matched        []int     `json:"matched"`
	JollyHit       bool      `json:"jollyHit"`
	SuperstarHit   bool      `json:"superstarHit"`
	Tier           PrizeTier `json:"tier"`
	EstimatedPrize float64   `json:"estimatedPrize"`
}

// ValidationReport aggregates a validation pass over many tickets
type ValidationReport struct {
	Draw         Draw              `json:"draw"`
	JackpotValue float64           `json:"jackpotValue"`
	Results      []TicketResult    `json:"results"`
	TierCounts   map[PrizeTier]int `json:"tierCounts"`
	TotalPayout  float64           `json:"totalPayout"`
	Winners      int               `json:"winners"`
}

// MatchProbability is the chance that the best of k tickets reaches at least AtLeast hits
type MatchProbability struct {
	AtLeast     int     `json:"atLeast"`
	Probability float64 `json:"probability"`
}

// ExactProbability is the chance that one ticket shares exactly Hits numbers with the draw
type ExactProbability struct {
	Hits        int     `json:"hits"`
	Probability float64 `json:"probability"`
	OneIn       float64 `json:"oneIn"`
}
