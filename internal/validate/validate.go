package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reQ   = regexp.MustCompile(`^[\p{L}\p{N} _'.,&/-]{1,80}$`)
	reSKU = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)
)

// ID validates a positive integer resource id.
func ID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > 80 {
		s = string(r[:80])
	}
	return s, reQ.MatchString(s)
}

// Price validates a non-negative decimal amount.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Bool accepts true/false/1/0 in any case.
func Bool(s string) (bool, bool) {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
	return b, err == nil
}

// Qty validates a stock quantity: a non-negative integer.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n >= 0
}

func SKU(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSKU.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > 120 {
		return "", false
	}
	return s, true
}
