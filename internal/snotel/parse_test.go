package snotel

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `# This report was generated on 2025-01-16
# Berthoud Summit (335)
# Colorado SNOTEL Site - 11300 ft
Date,Snow Water Equivalent (in) Start of Day Values
2025-01-12,9.1
2025-01-13,9.4
2025-01-14,
2025-01-15,10.2
not-a-date,5.0
2025-1-16,10.3
`

func TestParseDailyCSV(t *testing.T) {
	obs, dropped, err := ParseDailyCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, dropped, "malformed date rows should be dropped and counted")
	require.Len(t, obs, 4)

	assert.Equal(t, time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC), obs[0].Date)
	assert.Equal(t, 9.1, obs[0].Value)
	assert.True(t, obs[0].Valid)

	// The empty value row is an explicit missing observation, not zero.
	assert.False(t, obs[2].Valid)
	assert.Equal(t, 0.0, obs[2].Value)

	assert.Equal(t, 10.2, obs[3].Value)
}

func TestParseDailyCSVEmpty(t *testing.T) {
	obs, dropped, err := ParseDailyCSV(strings.NewReader("# only comments\n# nothing else\n"))
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Empty(t, obs)
}

func TestParseDailyCSVNoHeader(t *testing.T) {
	// Some report variants start straight into data rows.
	obs, dropped, err := ParseDailyCSV(strings.NewReader("2024-12-01,5.5\n2024-12-02,5.7\n"))
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, obs, 2)
	assert.Equal(t, 5.5, obs[0].Value)
}

func TestParseDailyCSVRepeatedHeader(t *testing.T) {
	in := "Date,WTEQ\n2024-12-01,5.5\nDate,WTEQ\n2024-12-02,5.7\n"
	obs, dropped, err := ParseDailyCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, dropped, "a repeated mid-stream header is a dropped row")
	assert.Len(t, obs, 2)
}
