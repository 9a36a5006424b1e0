package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	month, ok := parseMonth("2026-08")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), month)

	month, ok = parseMonth(" 2026-08-15 ")
	require.True(t, ok)
	assert.Equal(t, time.August, month.Month())

	_, ok = parseMonth("August 2026")
	assert.False(t, ok)

	_, ok = parseMonth("")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	date, ok := parseDate("2026-08-31")
	require.True(t, ok)
	assert.Equal(t, 31, date.Day())

	_, ok = parseDate("2026-08")
	assert.False(t, ok)
}

func TestCentsConversion(t *testing.T) {
	assert.EqualValues(t, 1999, centsFromAmount(19.99))
	assert.EqualValues(t, 2000, centsFromAmount(19.999))
	assert.EqualValues(t, 0, centsFromAmount(0))

	assert.Equal(t, 19.99, amountFromCents(1999))
	assert.Equal(t, 0.01, amountFromCents(1))
}

func TestParseID(t *testing.T) {
	id, ok := parseID("1234567890123456789")
	require.True(t, ok)
	assert.EqualValues(t, 1234567890123456789, id)

	_, ok = parseID("")
	assert.False(t, ok)

	_, ok = parseID("abc")
	assert.False(t, ok)

	_, ok = parseID("0")
	assert.False(t, ok)
}
