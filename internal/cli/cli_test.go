package cli

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottogen-backend/internal/generator"
	"github.com/ArowuTest/lottogen-backend/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	first, err := run(t, "generate", "-n", "5", "--seed", "weekly", "--include", "7")
	require.NoError(t, err)
	second, err := run(t, "generate", "-n", "5", "--seed", "weekly", "--include", "7")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Contains(t, strings.Fields(line), "07")
	}
}

func TestGenerate_Formats(t *testing.T) {
	out, err := run(t, "generate", "-n", "3", "--seed", "s", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "order,key,"))

	out, err = run(t, "generate", "-n", "3", "--seed", "s", "--json")
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 3)

	_, err = run(t, "generate", "--format", "xml")
	assert.Error(t, err)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := run(t, "generate", "--include", "1,2,3,4,5,6,7")
	assert.ErrorIs(t, err, generator.ErrImpossibleConstraint)

	_, err = run(t, "generate", "--exclude", "1,x")
	assert.Error(t, err)

	_, err = run(t, "generate", "-n", "2", "--exclude", rangeList(7, 90), "--nonce-guard", "3")
	assert.ErrorIs(t, err, generator.ErrUniquenessExhausted)
}

func TestOdds(t *testing.T) {
	out, err := run(t, "odds", "-k", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "AT LEAST")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)

	out, err = run(t, "odds", "--exact", "--json")
	require.NoError(t, err)
	var dist []models.ExactProbability
	require.NoError(t, json.Unmarshal([]byte(out), &dist))
	assert.Len(t, dist, 7)

	_, err = run(t, "odds", "-k", "0")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "generate", "-n", "1", "--seed", "jackpot")
	require.NoError(t, err)
	fields := strings.Fields(strings.TrimSpace(out))
	require.Len(t, fields, models.TicketSize)
	numbers := make([]string, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		require.NoError(t, err)
		numbers[i] = strconv.Itoa(n)
	}

	out, err = run(t, "validate", "-n", "1", "--seed", "jackpot", "--draw", strings.Join(numbers, ","), "--jackpot", "1000", "--json")
	require.NoError(t, err)
	var report models.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, models.Tier6, report.Results[0].Tier)
	assert.Equal(t, 1000.0, report.TotalPayout)

	out, err = run(t, "validate", "-n", "4", "--seed", "x", "--draw", "1,2,3,4,5,6", "--jolly", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "winners")
}

func TestValidate_BadDraw(t *testing.T) {
	_, err := run(t, "validate")
	assert.Error(t, err)

	_, err = run(t, "validate", "--draw", "1,2,3")
	assert.ErrorIs(t, err, models.ErrInvalidDrawInput)

	_, err = run(t, "validate", "--draw", "1,2,3,4,5,6", "--jolly", "3")
	assert.ErrorIs(t, err, models.ErrInvalidDrawInput)
}

func rangeList(from, to int) string {
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}
