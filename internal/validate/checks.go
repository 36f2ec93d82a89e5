package validate

import (
	"encoding/base64"
	"regexp"
	"time"

	"github.com/rezonia/eracun/internal/numeric"
)

var (
	oibPattern     = regexp.MustCompile(`^\d{11}$`)
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// isOIB reports whether s is a syntactically valid tax id: exactly 11
// digits.
func isOIB(s string) bool {
	return oibPattern.MatchString(s)
}

func isCountryCode(s string) bool {
	return countryPattern.MatchString(s)
}

func isEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// isAmount reports whether s is a non-negative decimal string.
func isAmount(s string) bool {
	return numeric.IsDecimal(s)
}

func isPercent(p float64) bool {
	return p >= 0 && p <= 100
}

// isDate reports whether s is a bare YYYY-MM-DD date.
func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isBase64(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}

// parseIssueDateTime parses the combined issue datetime input. Typed
// values pass through; strings are tried offset-aware first, then naive.
// The zero time and false signal an unparsable value, which the caller
// rejects with a format error.
func parseIssueDateTime(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		for _, format := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(format, val); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
