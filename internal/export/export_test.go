package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/lottogen-backend/internal/models"
)

func sampleCollection() *models.Collection {
	return &models.Collection{
		Name: "weekly",
		Tickets: []models.Ticket{
			{
				Combination: models.Combination{3, 7, 11, 45, 60, 88},
				Key:         "3-7-11-45-60-88",
				Order:       0,
				Provenance:  models.Provenance{Mode: models.ModeSeeded, Seed: "abc", Slot: 0},
			},
			{
				Combination: models.Combination{1, 2, 3, 4, 5, 6},
				Key:         "1-2-3-4-5-6",
				Frozen:      true,
				Order:       4,
				Provenance:  models.Provenance{Mode: models.ModeEntropy, Base: 77, Slot: 4, Nonce: 2},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, Records(sampleCollection())))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"0", "3-7-11-45-60-88", "3", "7", "11", "45", "60", "88", "false", "SEEDED", "abc", "0", "0", "0"}, rows[1])
	assert.Equal(t, []string{"4", "1-2-3-4-5-6", "1", "2", "3", "4", "5", "6", "true", "ENTROPY", "", "77", "4", "2"}, rows[2])
}

func TestWriteTXT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTXT, Records(sampleCollection())))
	assert.Equal(t, "03 07 11 45 60 88\n01 02 03 04 05 06 *\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, Records(sampleCollection())))

	var got []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, models.Key("1-2-3-4-5-6"), got[1].Key)
	assert.True(t, got[1].Frozen)
	assert.Equal(t, 2, got[1].Provenance.Nonce)
}
