package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	months := defaultMonthNames()

	t.Run("year first", func(t *testing.T) {
		date, ok := normalizeDate([]string{"2024", "03", "15"}, OrderYMD, months)
		require.True(t, ok)
		assert.Equal(t, "2024-03-15", date)
	})

	t.Run("month first", func(t *testing.T) {
		date, ok := normalizeDate([]string{"03", "15", "2024"}, OrderMDY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-03-15", date)
	})

	t.Run("month first falls back to day first", func(t *testing.T) {
		// 25/12/2024 has no month 25; the day-first reading is the real date.
		date, ok := normalizeDate([]string{"25", "12", "2024"}, OrderMDY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-12-25", date)
	})

	t.Run("day first", func(t *testing.T) {
		date, ok := normalizeDate([]string{"15", "03", "2024"}, OrderDMY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-03-15", date)
	})

	t.Run("two digit year expands to current century", func(t *testing.T) {
		date, ok := normalizeDate([]string{"15", "03", "24"}, OrderDMY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-03-15", date)
	})

	t.Run("day month-name year", func(t *testing.T) {
		date, ok := normalizeDate([]string{"15", "Mar", "2024"}, OrderDMonY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-03-15", date)
	})

	t.Run("full month name", func(t *testing.T) {
		date, ok := normalizeDate([]string{"1", "December", "2023"}, OrderDMonY, months)
		require.True(t, ok)
		assert.Equal(t, "2023-12-01", date)
	})

	t.Run("four letter abbreviation resolves by prefix", func(t *testing.T) {
		date, ok := normalizeDate([]string{"30", "Sept", "2024"}, OrderDMonY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-09-30", date)
	})

	t.Run("month-name day year", func(t *testing.T) {
		date, ok := normalizeDate([]string{"Mar", "15", "2024"}, OrderMonDY, months)
		require.True(t, ok)
		assert.Equal(t, "2024-03-15", date)
	})

	t.Run("rejects impossible calendar date", func(t *testing.T) {
		_, ok := normalizeDate([]string{"2024", "02", "30"}, OrderYMD, months)
		assert.False(t, ok)
	})

	t.Run("rejects unknown month name", func(t *testing.T) {
		_, ok := normalizeDate([]string{"15", "Foo", "2024"}, OrderDMonY, months)
		assert.False(t, ok)
	})

	t.Run("rejects too few groups", func(t *testing.T) {
		_, ok := normalizeDate([]string{"2024", "03"}, OrderYMD, months)
		assert.False(t, ok)
	})
}

func TestValidCalendarDate(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    bool
	}{
		{"regular date", 2024, 3, 15, true},
		{"leap day on leap year", 2024, 2, 29, true},
		{"leap day on non-leap year", 2023, 2, 29, false},
		{"february 30th", 2024, 2, 30, false},
		{"month 13", 2024, 13, 1, false},
		{"day zero", 2024, 1, 0, false},
		{"year below range", 1899, 6, 1, false},
		{"year above range", 2101, 6, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validCalendarDate(tt.y, tt.m, tt.d))
		})
	}
}

func TestValidISODate(t *testing.T) {
	assert.True(t, validISODate("2024-03-15"))
	assert.False(t, validISODate("2024-02-30"))
	assert.False(t, validISODate("1850-01-01"))
	assert.False(t, validISODate("2024-3-15"))
	assert.False(t, validISODate("not-a-date"))
	assert.False(t, validISODate(""))
}
