package generator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/random"
)

func rangeInts(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

func assertWellFormed(t *testing.T, c models.Combination) {
	t.Helper()
	for i, n := range c {
		require.GreaterOrEqual(t, n, models.MinNumber)
		require.LessOrEqual(t, n, models.MaxNumber)
		if i > 0 {
			require.Less(t, c[i-1], n, "ticket %v must be strictly ascending", c)
		}
	}
}

func TestIsValid(t *testing.T) {
	c := models.Combination{3, 10, 20, 30, 40, 50}
	tests := []struct {
		name string
		rule models.Constraints
		want bool
	}{
		{"no rules", models.Constraints{}, true},
		{"excluded hit", models.Constraints{Exclude: []int{20}}, false},
		{"excluded miss", models.Constraints{Exclude: []int{21}}, true},
		{"must present", models.Constraints{MustInclude: []int{3, 50}}, true},
		{"must missing", models.Constraints{MustInclude: []int{3, 51}}, false},
		{"any-of hit", models.Constraints{MustIncludeAnyOf: []int{1, 2, 3}}, true},
		{"any-of miss", models.Constraints{MustIncludeAnyOf: []int{1, 2, 4}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(c, tt.rule))
		})
	}
}

func TestValidateConstraints(t *testing.T) {
	tests := []struct {
		name    string
		rule    models.Constraints
		wantErr bool
	}{
		{"empty", models.Constraints{}, false},
		{"six mandatory", models.Constraints{MustInclude: []int{1, 2, 3, 4, 5, 6}}, false},
		{"seven mandatory", models.Constraints{MustInclude: rangeInts(1, 7)}, true},
		{"overlap", models.Constraints{MustInclude: []int{5}, Exclude: []int{5}}, true},
		{"out of range", models.Constraints{Exclude: []int{91}}, true},
		{"too few left", models.Constraints{Exclude: rangeInts(1, 85)}, true},
		{"exactly six left", models.Constraints{Exclude: rangeInts(1, 84)}, false},
		{"any-of all excluded", models.Constraints{Exclude: []int{1, 2}, MustIncludeAnyOf: []int{1, 2}}, true},
		{"full must misses any-of", models.Constraints{MustInclude: rangeInts(1, 6), MustIncludeAnyOf: []int{80}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConstraints(tt.rule)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrImpossibleConstraint)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSampleOne_SatisfiesConstraints(t *testing.T) {
	rules := []models.Constraints{
		{},
		{Exclude: rangeInts(1, 45)},
		{MustInclude: []int{7, 77}},
		{MustIncludeAnyOf: []int{13}},
		{Exclude: []int{1, 2, 3}, MustInclude: []int{4}, MustIncludeAnyOf: []int{88, 89, 90}},
	}
	for i, rule := range rules {
		stream := random.SeededStream(fmt.Sprintf("rule-%d", i))
		for n := 0; n < 200; n++ {
			c, err := SampleOne(stream, rule)
			require.NoError(t, err)
			assertWellFormed(t, c)
			require.True(t, IsValid(c, rule), "ticket %v breaks rule %+v", c, rule)
		}
	}
}

func TestSampleOne_OnlySixAllowed(t *testing.T) {
	rule := models.Constraints{Exclude: rangeInts(1, 84)}
	for _, seed := range []string{"a", "b", "c", "d"} {
		c, err := SampleOne(random.SeededStream(seed), rule)
		require.NoError(t, err)
		assert.Equal(t, models.Combination{85, 86, 87, 88, 89, 90}, c)
	}
}

func TestSampleOne_AllMandatory(t *testing.T) {
	rule := models.Constraints{MustInclude: []int{42, 7, 35, 14, 28, 21}}
	c, err := SampleOne(random.SeededStream("x"), rule)
	require.NoError(t, err)
	assert.Equal(t, models.Combination{7, 14, 21, 28, 35, 42}, c)
}

func TestSampleOne_SevenMandatory(t *testing.T) {
	_, err := SampleOne(random.SeededStream("x"), models.Constraints{MustInclude: rangeInts(1, 7)})
	assert.ErrorIs(t, err, ErrImpossibleConstraint)
}

func TestSampleOne_MandatoryExcluded(t *testing.T) {
	_, err := SampleOne(random.SeededStream("x"), models.Constraints{MustInclude: []int{5}, Exclude: []int{5}})
	assert.ErrorIs(t, err, ErrImpossibleConstraint)
	assert.NotErrorIs(t, err, ErrGenerationExhausted)
}

func TestSampleOne_GuardsFailPromptly(t *testing.T) {
	s := NewSampler(models.GenerationLimits{FillGuard: 10, AnyOfGuard: 3})
	// Only six numbers remain; ten draws out of ninety practically never cover them.
	_, err := s.SampleOne(random.SeededStream("tight"), models.Constraints{Exclude: rangeInts(1, 84)})
	assert.ErrorIs(t, err, ErrGenerationExhausted)

	// The any-of number is excluded, so every restart fails.
	_, err = s.SampleOne(random.SeededStream("tight"), models.Constraints{Exclude: []int{9}, MustIncludeAnyOf: []int{9}})
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}

func TestSampleOne_Deterministic(t *testing.T) {
	rule := models.Constraints{MustIncludeAnyOf: []int{1, 2, 3}}
	a := random.SeededStream("repeat")
	b := random.SeededStream("repeat")
	for i := 0; i < 50; i++ {
		ca, err := SampleOne(a, rule)
		require.NoError(t, err)
		cb, err := SampleOne(b, rule)
		require.NoError(t, err)
		require.Equal(t, ca, cb)
	}
}

func TestLedger_Allocate(t *testing.T) {
	existing := []models.Key{"1-2-3-4-5-6", "10-20-30-40-50-60"}
	l, err := NewLedger(existing)
	require.NoError(t, err)

	allocs, err := l.Allocate(NewSampler(models.GenerationLimits{}), 500, random.SeededFactory("seed", "c1"), models.Constraints{})
	require.NoError(t, err)
	require.Len(t, allocs, 500)
	assert.Equal(t, 502, l.Len())

	seen := make(map[models.Key]bool)
	for i, a := range allocs {
		assert.Equal(t, i, a.Slot)
		assert.Equal(t, a.Combination.Key(), a.Key)
		assert.False(t, seen[a.Key], "duplicate %s", a.Key)
		assert.NotContains(t, existing, a.Key)
		seen[a.Key] = true
	}
}

func TestLedger_DuplicateSeed(t *testing.T) {
	_, err := NewLedger([]models.Key{"1-2-3-4-5-6", "1-2-3-4-5-6"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLedger_CollisionReseeds(t *testing.T) {
	rule := models.Constraints{Exclude: rangeInts(1, 83)} // seven numbers left: seven possible tickets
	taken := []models.Key{
		"84-86-87-88-89-90", "84-85-87-88-89-90", "84-85-86-88-89-90",
		"84-85-86-87-89-90", "84-85-86-87-88-90", "84-85-86-87-88-89",
	}

	reseeded := false
	for i := 0; i < 10; i++ {
		l, err := NewLedger(taken)
		require.NoError(t, err)
		allocs, err := l.Allocate(NewSampler(models.GenerationLimits{}), 1, random.SeededFactory("s", fmt.Sprint(i)), rule)
		require.NoError(t, err)
		require.Len(t, allocs, 1)
		assert.Equal(t, models.Key("85-86-87-88-89-90"), allocs[0].Key)
		reseeded = reseeded || allocs[0].Nonce > 0
	}
	assert.True(t, reseeded, "a one-in-seven target must need reseeds")
}

func TestLedger_UniquenessExhausted(t *testing.T) {
	rule := models.Constraints{Exclude: rangeInts(1, 84)}
	l, err := NewLedger([]models.Key{"85-86-87-88-89-90", "1-2-3-4-5-6"})
	require.NoError(t, err)

	s := NewSampler(models.GenerationLimits{NonceGuard: 20})
	_, err = l.Allocate(s, 1, random.SeededFactory("s", "c"), rule)
	assert.ErrorIs(t, err, ErrUniquenessExhausted)
	assert.Equal(t, 2, l.Len())
}

func TestLedger_AllocateRollsBackOnError(t *testing.T) {
	rule := models.Constraints{Exclude: rangeInts(1, 83)}
	l, err := NewLedger(nil)
	require.NoError(t, err)

	s := NewSampler(models.GenerationLimits{NonceGuard: 200})
	_, err = l.Allocate(s, 8, random.SeededFactory("s", "c"), rule)
	assert.ErrorIs(t, err, ErrUniquenessExhausted)
	assert.Equal(t, 0, l.Len())
}

func TestLedger_Release(t *testing.T) {
	l, err := NewLedger([]models.Key{"1-2-3-4-5-6"})
	require.NoError(t, err)
	freed := l.Release("1-2-3-4-5-6", "7-8-9-10-11-12")
	assert.Equal(t, []models.Key{"1-2-3-4-5-6"}, freed)
	assert.Equal(t, 0, l.Len())
}

func TestScheduler_Reproducible(t *testing.T) {
	run := func() []models.Key {
		l, err := NewLedger(nil)
		require.NoError(t, err)
		res, err := NewScheduler(NewSampler(models.GenerationLimits{})).Run(context.Background(), l, Batch{
			Count:   120,
			Factory: random.SeededFactory("fixed", "collection"),
		}, nil)
		require.NoError(t, err)
		return res.Keys()
	}
	assert.Equal(t, run(), run())
}

func TestScheduler_ProgressAndYield(t *testing.T) {
	l, err := NewLedger(nil)
	require.NoError(t, err)

	yields := 0
	s := &Scheduler{Sampler: NewSampler(models.GenerationLimits{}), Yield: func() { yields++ }, ChunkSize: ChunkSize}
	var reports [][2]int
	res, err := s.Run(context.Background(), l, Batch{Count: 95, Factory: random.SeededFactory("p", "c")}, func(done, total int) {
		reports = append(reports, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Len(t, res.Allocations, 95)
	require.Len(t, reports, 10)
	assert.Equal(t, 9, yields)
	for i := 1; i < len(reports); i++ {
		assert.Greater(t, reports[i][0], reports[i-1][0])
	}
	assert.Equal(t, [2]int{95, 95}, reports[len(reports)-1])
	for i, a := range res.Allocations {
		assert.Equal(t, i, a.Slot)
	}
}

func TestScheduler_CancelRollsBack(t *testing.T) {
	existing := []models.Key{"1-2-3-4-5-6", "11-12-13-14-15-16"}
	l, err := NewLedger(existing)
	require.NoError(t, err)
	before := l.Keys()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var last int
	_, err = NewScheduler(NewSampler(models.GenerationLimits{})).Run(ctx, l, Batch{
		Count:   100,
		Factory: random.SeededFactory("cancel", "c"),
		Replace: []models.Key{"1-2-3-4-5-6"},
	}, func(done, total int) {
		last = done
		if done >= 30 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 30, last)
	assert.Equal(t, before, l.Keys())
}

func TestScheduler_ErrorCommitsNothing(t *testing.T) {
	l, err := NewLedger([]models.Key{"2-4-6-8-10-12"})
	require.NoError(t, err)

	_, err = NewScheduler(nil).Run(context.Background(), l, Batch{
		Count:       5,
		Constraints: models.Constraints{MustInclude: rangeInts(1, 7)},
		Factory:     random.SeededFactory("x", "c"),
	}, nil)
	assert.ErrorIs(t, err, ErrImpossibleConstraint)
	assert.Equal(t, []models.Key{"2-4-6-8-10-12"}, l.Keys())

	s := &Scheduler{Sampler: NewSampler(models.GenerationLimits{NonceGuard: 50})}
	_, err = s.Run(context.Background(), l, Batch{
		Count:       8,
		Constraints: models.Constraints{Exclude: rangeInts(1, 83)},
		Factory:     random.SeededFactory("x", "c"),
	}, nil)
	assert.ErrorIs(t, err, ErrUniquenessExhausted)
	assert.Equal(t, []models.Key{"2-4-6-8-10-12"}, l.Keys())
}

func TestScheduler_ReplaceFreesOldKeys(t *testing.T) {
	rule := models.Constraints{Exclude: rangeInts(1, 84)}
	l, err := NewLedger([]models.Key{"85-86-87-88-89-90"})
	require.NoError(t, err)

	res, err := NewScheduler(nil).Run(context.Background(), l, Batch{
		Count:       1,
		Constraints: rule,
		Factory:     random.SeededFactory("r", "c"),
		Replace:     []models.Key{"85-86-87-88-89-90"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Key{"85-86-87-88-89-90"}, res.Keys())
	assert.Equal(t, 1, l.Len())

	res.Revert(l)
	assert.Equal(t, []models.Key{"85-86-87-88-89-90"}, l.Keys())
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, 10, ChunkSize(1))
	assert.Equal(t, 10, ChunkSize(100))
	assert.Equal(t, 50, ChunkSize(101))
	assert.Equal(t, 250, ChunkSize(5_000))
	assert.Equal(t, 1_000, ChunkSize(50_000))
}
