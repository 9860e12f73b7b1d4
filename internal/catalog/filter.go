package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Key names one of the product filter constraints.
type Key int

const (
	KeyCategory Key = iota
	KeySearch
	KeyMinPrice
	KeyMaxPrice
	KeyIsActive
)

var keyNames = [...]string{
	KeyCategory: "category",
	KeySearch:   "search",
	KeyMinPrice: "min_price",
	KeyMaxPrice: "max_price",
	KeyIsActive: "is_active",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey maps a query/form name to its Key.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return 0, false
}

// Filters holds the optional product query constraints. A nil field is unset.
// Values are treated as immutable: Apply always allocates fresh pointers.
type Filters struct {
	Category *int64
	Search   *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	IsActive *bool
}

// Apply returns current with key replaced by value. An empty value unsets the
// key. current is not modified.
func Apply(current Filters, key Key, value string) (Filters, error) {
	next := current
	unset := value == ""

	switch key {
	case KeyCategory:
		if unset {
			next.Category = nil
			break
		}
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return current, fmt.Errorf("category %q: %w", value, err)
		}
		next.Category = &id
	case KeySearch:
		if unset {
			next.Search = nil
			break
		}
		s := value
		next.Search = &s
	case KeyMinPrice, KeyMaxPrice:
		var p *decimal.Decimal
		if !unset {
			d, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return current, fmt.Errorf("%s %q: %w", key, value, err)
			}
			p = &d
		}
		if key == KeyMinPrice {
			next.MinPrice = p
		} else {
			next.MaxPrice = p
		}
	case KeyIsActive:
		if unset {
			next.IsActive = nil
			break
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return current, fmt.Errorf("is_active %q: %w", value, err)
		}
		next.IsActive = &b
	default:
		return current, fmt.Errorf("unknown filter key %s", key)
	}
	return next, nil
}

// Get returns the form representation of key, "" when unset.
func (f Filters) Get(key Key) string {
	switch key {
	case KeyCategory:
		if f.Category != nil {
			return strconv.FormatInt(*f.Category, 10)
		}
	case KeySearch:
		if f.Search != nil {
			return *f.Search
		}
	case KeyMinPrice:
		if f.MinPrice != nil {
			return f.MinPrice.String()
		}
	case KeyMaxPrice:
		if f.MaxPrice != nil {
			return f.MaxPrice.String()
		}
	case KeyIsActive:
		if f.IsActive != nil {
			return strconv.FormatBool(*f.IsActive)
		}
	}
	return ""
}

// Values encodes the set constraints as query parameters. Zero category and
// zero prices carry no constraint and are left out; is_active is sent whenever
// it is set.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Category != nil && *f.Category != 0 {
		v.Set("category", strconv.FormatInt(*f.Category, 10))
	}
	if f.Search != nil && *f.Search != "" {
		v.Set("search", *f.Search)
	}
	if f.MinPrice != nil && !f.MinPrice.IsZero() {
		v.Set("min_price", f.MinPrice.String())
	}
	if f.MaxPrice != nil && !f.MaxPrice.IsZero() {
		v.Set("max_price", f.MaxPrice.String())
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return v
}
