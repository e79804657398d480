// Package probability holds the exact match odds for a 6-of-90 game and
// the prize classification used when validating tickets against a draw.
package probability

import (
	"math"

	"github.com/ArowuTest/lottogen-backend/internal/models"
)

// Binomial returns C(n, k) computed multiplicatively on the smaller of k and n-k.
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return math.Round(result)
}

// ExactMatchProbability is the chance that a uniformly random ticket shares
// exactly r numbers with a fixed draw.
func ExactMatchProbability(r int) float64 {
	if r < 0 || r > models.TicketSize {
		return 0
	}
	others := models.MaxNumber - models.TicketSize
	return Binomial(models.TicketSize, r) * Binomial(others, models.TicketSize-r) /
		Binomial(models.MaxNumber, models.TicketSize)
}

// ExactDistribution lists ExactMatchProbability for 0 through 6 hits.
func ExactDistribution() []models.ExactProbability {
	out := make([]models.ExactProbability, 0, models.TicketSize+1)
	for r := 0; r <= models.TicketSize; r++ {
		p := ExactMatchProbability(r)
		out = append(out, models.ExactProbability{Hits: r, Probability: p, OneIn: math.Round(1 / p)})
	}
	return out
}

// cdf returns the chance of at most r matches.
func cdf(r int) float64 {
	sum := 0.0
	for i := 0; i <= r; i++ {
		sum += ExactMatchProbability(i)
	}
	return sum
}

// AtLeastDistribution returns, for m from 6 down to 1, the chance that the
// best of k tickets reaches at least m matches. Tickets are treated as
// independent draws, which the no-duplicate rule makes slightly
// pessimistic; the figures are for display only.
func AtLeastDistribution(k int) []models.MatchProbability {
	out := make([]models.MatchProbability, 0, models.TicketSize)
	for m := models.TicketSize; m >= 1; m-- {
		miss := math.Min(cdf(m-1), 1)
		out = append(out, models.MatchProbability{
			AtLeast:     m,
			Probability: 1 - math.Pow(miss, float64(k)),
		})
	}
	return out
}

// Classify maps a hit count and jolly flag to a prize tier.
func Classify(hits int, jollyHit bool) models.PrizeTier {
	switch {
	case hits >= 6:
		return models.Tier6
	case hits == 5 && jollyHit:
		return models.Tier5Plus1
	case hits == 5:
		return models.Tier5
	case hits == 4:
		return models.Tier4
	case hits == 3:
		return models.Tier3
	case hits == 2:
		return models.Tier2
	default:
		return models.TierNone
	}
}

// Engine validates tickets using a payout table.
type Engine struct {
	payouts models.PayoutTable
}

// NewEngine returns an Engine; a nil table means the default averages.
func NewEngine(payouts models.PayoutTable) *Engine {
	if payouts == nil {
		payouts = models.DefaultPayoutTable()
	}
	return &Engine{payouts: payouts}
}

// EstimatePayout returns the average payout of tier, or jackpotValue for tier 6.
func (e *Engine) EstimatePayout(tier models.PrizeTier, jackpotValue float64) float64 {
	if tier == models.Tier6 {
		return jackpotValue
	}
	return e.payouts[tier]
}

// EstimatePayout uses the default payout table.
func EstimatePayout(tier models.PrizeTier, jackpotValue float64) float64 {
	return NewEngine(nil).EstimatePayout(tier, jackpotValue)
}

// ValidateDraw scores every combination against draw.
func (e *Engine) ValidateDraw(combos []models.Combination, draw models.Draw, jackpotValue float64) (*models.ValidationReport, error) {
	if err := draw.Validate(); err != nil {
		return nil, err
	}

	var drawn [models.MaxNumber + 1]bool
	for _, n := range draw.Numbers {
		drawn[n] = true
	}

	report := &models.ValidationReport{
		Draw:         draw,
		JackpotValue: jackpotValue,
		Results:      make([]models.TicketResult, 0, len(combos)),
		TierCounts:   make(map[models.PrizeTier]int, len(models.AllTiers)),
	}
	for _, tier := range models.AllTiers {
		report.TierCounts[tier] = 0
	}

	for _, c := range combos {
		matched := make([]int, 0, models.TicketSize)
		for _, n := range c {
			if drawn[n] {
				matched = append(matched, n)
			}
		}
		res := models.TicketResult{
			Key:          c.Key(),
			Numbers:      c.Numbers(),
			Hits:         len(matched),
			Matched:      matched,
			JollyHit:     draw.Jolly != nil && c.Contains(*draw.Jolly),
			SuperstarHit: draw.Superstar != nil && c.Contains(*draw.Superstar),
		}
		res.Tier = Classify(res.Hits, res.JollyHit)
		res.EstimatedPrize = e.EstimatePayout(res.Tier, jackpotValue)

		report.TierCounts[res.Tier]++
		report.TotalPayout += res.EstimatedPrize
		if res.Tier != models.TierNone {
			report.Winners++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// ValidateDraw uses the default payout table.
func ValidateDraw(combos []models.Combination, draw models.Draw, jackpotValue float64) (*models.ValidationReport, error) {
	return NewEngine(nil).ValidateDraw(combos, draw, jackpotValue)
}
