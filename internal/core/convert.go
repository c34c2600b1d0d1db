package core

// convert.go handles the messy reality of spreadsheet cell values:
//   - currency symbols and thousand separators in balances
//   - accounting format (parentheses for negative)
//   - several date layouts plus raw Excel serial numbers
//   - time-of-day noise on date cells (discarded before any arithmetic)
//
// All Parse* functions report ok=false for empty or unparsable input and
// never panic; the caller decides whether that drops the row.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numericRegex validates a cleaned-up amount string. Matches integers,
// decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Date layouts tried in order. The source workbooks are Latin-American
// exports, so day-first layouts come before ISO ones.
var dateLayouts = []string{
	"2/1/2006", "02/01/2006",
	"2-1-2006", "02-01-2006",
	"2006-01-02", "2006/01/02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2/1/06", "02/01/06",
}

// excelEpoch is day zero of the 1900 date system (accounting for the
// fictitious 1900 leap day Excel inherited from Lotus 1-2-3).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseAmount converts a cell value to a float64. Handles currency symbols,
// thousands separators, and accounting negatives like "(1,234.56)".
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDate converts a cell value to a date-only time.Time in UTC.
// Accepts the layouts above plus raw Excel serial numbers (the value a
// date cell yields when the sheet carries no number format).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), true
		}
	}

	// Excel serial number
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 200000 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return DateOnly(t), true
	}

	return time.Time{}, false
}

// DateOnly truncates a timestamp to calendar-day granularity in UTC.
// Age arithmetic must never see time-of-day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns to − from in whole calendar days. Both arguments are
// truncated to date-only first, so the result is exact.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// FormatDate renders a date as dd/mm/yyyy, the display convention of the
// source workbooks.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount as a whole-unit currency string with
// thousands separators, e.g. 1234567.8 -> "$1,234,568".
func FormatCurrency(v float64) string {
	return currencyPrinter.Sprintf("$%v", number.Decimal(v, number.MaxFractionDigits(0)))
}
