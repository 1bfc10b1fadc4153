package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// PresentSentinel is the literal used for an open-ended date range.
const PresentSentinel = "Present"

var shortMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// NormalizeDate converts the date forms seen in tabular and archive exports
// to a consistent textual form: a bare year stays "YYYY", "YYYY-MM" becomes
// "Mon YYYY", and "Month YYYY" is kept as written. Unrecognized input is
// returned unchanged rather than dropped.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/'
	})

	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		first, second := parts[0], parts[1]
		if isYear(first) {
			// "YYYY-MM" or "YYYY/MM"
			if name, ok := monthName(second); ok {
				return name + " " + first
			}
			return s
		}
		if isYear(second) {
			// "Jan 2020" or "01/2020"
			if name, ok := monthName(first); ok {
				return name + " " + second
			}
			return first + " " + second
		}
		return s
	default:
		return s
	}
}

// NormalizeEndDate applies NormalizeDate and defaults an absent value to the
// Present sentinel.
func NormalizeEndDate(raw string) string {
	normalized := NormalizeDate(raw)
	if normalized == "" {
		return PresentSentinel
	}
	return normalized
}

// FormatYearMonth renders a numeric year/month pair as "Mon YYYY", or bare
// "YYYY" when the month is unknown. A zero year yields the empty string.
func FormatYearMonth(year, month int) string {
	if year == 0 {
		return ""
	}
	if month >= 1 && month <= 12 {
		return fmt.Sprintf("%s %d", shortMonths[month-1], year)
	}
	return strconv.Itoa(year)
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// monthName resolves a numeric ("01".."12") or textual month token to its
// short name.
func monthName(token string) (string, bool) {
	if n, err := strconv.Atoi(token); err == nil {
		if n >= 1 && n <= 12 {
			return shortMonths[n-1], true
		}
		return "", false
	}
	lower := strings.ToLower(token)
	for _, m := range shortMonths {
		if strings.HasPrefix(lower, strings.ToLower(m)) {
			return m, true
		}
	}
	return "", false
}
