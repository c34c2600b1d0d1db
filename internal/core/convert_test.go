package core

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// ParseAmount
// ----------------------------------------------------------------------------

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"integer", "123", 123, true},
		{"zero", "0", 0, true},
		{"negative", "-456", -456, true},
		{"decimal", "123.45", 123.45, true},
		{"dollar sign", "$1,234.56", 1234.56, true},
		{"euro sign", "€1234.56", 1234.56, true},
		{"thousands separators", "1,234,567.89", 1234567.89, true},
		{"accounting negative", "(123.45)", -123.45, true},
		{"accounting with currency", "($1,234.56)", -1234.56, true},
		{"scientific notation", "1.5e3", 1500, true},
		{"whitespace", "  99  ", 99, true},
		{"empty", "", 0, false},
		{"text", "N/A", 0, false},
		{"mixed garbage", "12a3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseDate
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"day first slashes", "15/03/2026", date(2026, 3, 15), true},
		{"single digits", "2/1/2026", date(2026, 1, 2), true},
		{"iso", "2026-03-15", date(2026, 3, 15), true},
		{"iso with time discards clock", "2026-03-15 13:45:10", date(2026, 3, 15), true},
		{"excel serial", "46096", date(2026, 3, 15), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "mañana", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ----------------------------------------------------------------------------
// Day arithmetic
// ----------------------------------------------------------------------------

func TestDaysBetween(t *testing.T) {
	today := date(2026, 3, 15)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day", today, 0},
		{"tomorrow", date(2026, 3, 16), 1},
		{"yesterday", date(2026, 3, 14), -1},
		{"forty days out", date(2026, 4, 24), 40},
		{"time of day irrelevant", time.Date(2026, 3, 16, 23, 59, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(today, tt.to); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Formatting
// ----------------------------------------------------------------------------

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{500, "$500"},
		{1234567, "$1,234,567"},
		{-1234, "$-1,234"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(date(2026, 3, 5)); got != "05/03/2026" {
		t.Errorf("FormatDate = %q, want 05/03/2026", got)
	}
}
