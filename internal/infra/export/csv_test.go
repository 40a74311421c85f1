package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/leadgen/internal/entity"
)

func TestWriteLeadsCSV(t *testing.T) {
	city := "Montevideo"
	email := "hola@heladeria.uy"
	r := 4.75
	leads := []*entity.Lead{
		{
			ID:             1,
			BusinessName:   "Heladería Polar, S.A.",
			City:           &city,
			Email:          &email,
			Rating:         &r,
			EmailSent:      true,
			ResponseStatus: entity.ResponseNone,
			ExtractionDate: time.Date(2026, 10, 3, 15, 4, 5, 0, time.UTC),
		},
		{
			ID:             2,
			BusinessName:   "Kiosco 24",
			ResponseStatus: entity.ResponseReplied,
			ExtractionDate: time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLeadsCSV(&buf, leads))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Heladería Polar, S.A.", records[1][1])
	assert.Equal(t, "Montevideo", records[1][3])
	assert.Equal(t, "4.8", records[1][7])
	assert.Equal(t, "true", records[1][8])
	assert.Equal(t, "2026-10-03T15:04:05Z", records[1][12])
	assert.Equal(t, "", records[2][5])
	assert.Equal(t, "replied", records[2][11])
}
