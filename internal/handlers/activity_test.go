package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-08-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2026-08-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC), got)

	_, err = parseDate("15/08/2026")
	assert.Error(t, err)

	_, err = parseDate("not-a-date")
	assert.Error(t, err)
}
