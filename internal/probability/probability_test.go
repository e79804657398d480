package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottogen-backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k int
		want float64
	}{
		{90, 6, 622614630},
		{84, 6, 406481544},
		{6, 3, 20},
		{10, 0, 1},
		{10, 10, 1},
		{5, 7, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Binomial(tt.n, tt.k), "C(%d,%d)", tt.n, tt.k)
	}
}

func TestExactMatchProbability(t *testing.T) {
	sum := 0.0
	for r := 0; r <= 6; r++ {
		p := ExactMatchProbability(r)
		assert.Greater(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 1/622614630.0, ExactMatchProbability(6), 1e-20)
	assert.Equal(t, 0.0, ExactMatchProbability(7))
}

func TestExactDistribution(t *testing.T) {
	dist := ExactDistribution()
	require.Len(t, dist, models.TicketSize+1)
	sum := 0.0
	for i, d := range dist {
		assert.Equal(t, i, d.Hits)
		sum += d.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, 622614630.0, dist[6].OneIn)
}

func TestAtLeastDistribution(t *testing.T) {
	for _, k := range []int{1, 10, 1000} {
		dist := AtLeastDistribution(k)
		require.Len(t, dist, 6)
		assert.Equal(t, 6, dist[0].AtLeast)
		assert.Equal(t, 1, dist[5].AtLeast)
		for i, d := range dist {
			assert.Greater(t, d.Probability, 0.0)
			assert.LessOrEqual(t, d.Probability, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, d.Probability, dist[i-1].Probability, "non-increasing in m")
			}
		}
	}

	single := AtLeastDistribution(1)
	assert.InDelta(t, ExactMatchProbability(6), single[0].Probability, 1e-13)

	many := AtLeastDistribution(10_000)
	assert.InDelta(t, 1.0, many[5].Probability, 1e-9)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hits  int
		jolly bool
		want  models.PrizeTier
	}{
		{6, false, models.Tier6},
		{5, true, models.Tier5Plus1},
		{5, false, models.Tier5},
		{4, true, models.Tier4},
		{3, false, models.Tier3},
		{2, false, models.Tier2},
		{1, true, models.TierNone},
		{0, false, models.TierNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.hits, tt.jolly))
	}
}

func TestEstimatePayout(t *testing.T) {
	assert.Equal(t, 75_000_000.0, EstimatePayout(models.Tier6, 75_000_000))
	assert.Equal(t, 32000.0, EstimatePayout(models.Tier5, 75_000_000))
	assert.Equal(t, 0.0, EstimatePayout(models.TierNone, 1))

	e := NewEngine(models.PayoutTable{models.Tier2: 9})
	assert.Equal(t, 9.0, e.EstimatePayout(models.Tier2, 0))
}

func TestValidateDraw(t *testing.T) {
	combos := []models.Combination{
		{1, 2, 3, 4, 5, 6},
		{1, 2, 3, 4, 5, 7},
		{1, 2, 3, 4, 5, 8},
		{1, 2, 40, 50, 60, 70},
		{80, 81, 82, 83, 84, 85},
	}
	draw := models.Draw{Numbers: []int{6, 5, 4, 3, 2, 1}, Jolly: intPtr(7), Superstar: intPtr(85)}

	report, err := ValidateDraw(combos, draw, 1_000_000)
	require.NoError(t, err)
	require.Len(t, report.Results, 5)

	assert.Equal(t, 6, report.Results[0].Hits)
	assert.Equal(t, models.Tier6, report.Results[0].Tier)
	assert.Equal(t, 1_000_000.0, report.Results[0].EstimatedPrize)

	assert.Equal(t, models.Tier5Plus1, report.Results[1].Tier)
	assert.True(t, report.Results[1].JollyHit)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, report.Results[1].Matched)

	assert.Equal(t, models.Tier5, report.Results[2].Tier)
	assert.Equal(t, models.Tier2, report.Results[3].Tier)
	assert.Equal(t, models.TierNone, report.Results[4].Tier)
	assert.True(t, report.Results[4].SuperstarHit)

	assert.Equal(t, 1, report.TierCounts[models.Tier6])
	assert.Equal(t, 1, report.TierCounts[models.TierNone])
	assert.Equal(t, 0, report.TierCounts[models.Tier4])
	assert.Equal(t, 4, report.Winners)
	assert.Equal(t, 1_000_000.0+620000+32000+5, report.TotalPayout)
}

func TestValidateDraw_InvalidDraw(t *testing.T) {
	_, err := ValidateDraw(nil, models.Draw{Numbers: []int{1, 2, 3}}, 0)
	assert.ErrorIs(t, err, models.ErrInvalidDrawInput)
}
