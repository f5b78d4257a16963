package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field decoded from upstream JSON.
// Providers send numbers as strings, raw numbers or not at all; decoding never fails,
// an unusable value is simply Missing. Callers choose the default with Or.
type Number struct {
	value   float64
	present bool
}

// Present wraps a known value.
func Present(v float64) Number { return Number{value: v, present: true} }

// Missing returns an absent value.
func Missing() Number { return Number{} }

// ParseNumber parses a decimal string; empty or malformed input is Missing.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return Present(v)
}

// Get returns the value and whether it was present.
func (n Number) Get() (float64, bool) { return n.value, n.present }

// IsPresent reports whether a value was decoded.
func (n Number) IsPresent() bool { return n.present }

// Or returns the value, or def when missing.
func (n Number) Or(def float64) float64 {
	if !n.present {
		return def
	}
	return n.value
}

// UnmarshalJSON accepts "1.5", 1.5 and null. Anything else decodes to Missing.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = Missing()
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = Missing()
			return nil
		}
		*n = ParseNumber(s)
		return nil
	}
	*n = ParseNumber(string(b))
	return nil
}

// MarshalJSON writes the value or null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
