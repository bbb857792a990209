package dispatch

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHourlyCSV(t *testing.T) {
	res, err := New().Simulate(commercialScenario())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeHourlyCSV(&buf, res.Hourly))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)
	assert.Equal(t, "hour", records[0][0])
	assert.Equal(t, "00:00", records[1][0])
	assert.Equal(t, "DIESEL", records[1][1])
	assert.Equal(t, "18.750000", records[1][5])
	assert.Equal(t, "23:00", records[24][0])
}

func TestWriteHourlyCSV(t *testing.T) {
	res, err := New().Simulate(commercialScenario())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hourly.csv")
	require.NoError(t, WriteHourlyCSV(path, res.Hourly))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "battery_discharge_kw")
}
