// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cashplan/internal/model"
)

// Currency is the symbol prefixed to money values. The config layer
// sets it once at startup.
var Currency = "$"

// FormatMoney formats a signed amount, e.g. -1234.5 -> "-$1,234.50".
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	whole := int64(v)
	cents := int64(v*100+0.5) - whole*100
	if cents >= 100 {
		// Rounding carried into the next whole unit.
		whole++
		cents -= 100
	}
	return fmt.Sprintf("%s%s.%02d", Currency, groupThousands(whole), cents)
}

// FormatSignedMoney always shows the sign, for variances and deltas.
func FormatSignedMoney(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatDate renders a calendar day as "02 Jan".
func FormatDate(t time.Time) string {
	return t.Format("02 Jan")
}

// FormatFullDate renders a calendar day as "2006-01-02".
func FormatFullDate(t time.Time) string {
	return t.Format(model.DayFormat)
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(t time.Time) string {
	return t.Format("Mon")
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(n)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
