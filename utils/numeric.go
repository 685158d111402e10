package utils

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Accept common operator-formatted strings like "1,200", "₹ 1,200.50" or "Rs. 90".
var currencyMarkers = []string{"₹", "INR", "inr", "Rs.", "rs.", "Rs", "rs"}

// ToDecimal coerces a loosely typed JSON value into a decimal.
// Missing, non-finite or unparsable values yield zero and ok=false.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return ToDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case bool:
		if n {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	case string:
		return parseNumericString(n)
	}
	return decimal.Zero, false
}

func parseNumericString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", "")
	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ToFloat is ToDecimal for callers storing plain JSON numbers. Never fails.
func ToFloat(v any) float64 {
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	d, _ := ToDecimal(v)
	return d.InexactFloat64()
}

// IsBlank reports whether v is absent or carries no usable value (nil, "", false, 0).
func IsBlank(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(n) == ""
	case bool:
		return !n
	case float64:
		return n == 0
	case int:
		return n == 0
	}
	return false
}
