package roster

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DurationParser converts a trailing-column value into paid hours. The
// source material does not pin down the paid-time format, so the parser is
// pluggable via Config; values it rejects remain ordinary day codes.
type DurationParser func(s string) (decimal.Decimal, bool)

var (
	decimalHoursPattern = regexp.MustCompile(`^\d{1,4}([.,]\d+)?$`)
	clockHoursPattern   = regexp.MustCompile(`^(\d{1,4}):([0-5]\d)$`)
)

// ParsePaidTime is the default DurationParser. It accepts decimal hour
// counts ("40", "8.5", "8,5") and clock-style totals ("8:30", "168:30"),
// returning hours in both cases.
func ParsePaidTime(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	if decimalHoursPattern.MatchString(s) {
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}

	if m := clockHoursPattern.FindStringSubmatch(s); m != nil {
		hours, err := decimal.NewFromString(m[1])
		if err != nil {
			return decimal.Decimal{}, false
		}
		minutes, err := decimal.NewFromString(m[2])
		if err != nil {
			return decimal.Decimal{}, false
		}
		return hours.Add(minutes.Div(decimal.NewFromInt(60))), true
	}

	return decimal.Decimal{}, false
}
