package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Points holds an assignment's points_possible as received. Values that were
// not JSON numbers are kept as raw text and never count as valid.
type Points struct {
	Value   float64
	Numeric bool
	Raw     string
}

// NewPoints builds a numeric points value.
func NewPoints(value float64) Points {
	return Points{Value: value, Numeric: true}
}

// Valid reports whether the points are a finite number greater than zero.
func (p Points) Valid() bool {
	if !p.Numeric || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return false
	}
	return p.Value > 0
}

// String renders the points the way they were supplied.
func (p Points) String() string {
	if !p.Numeric {
		return p.Raw
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

// UnmarshalJSON never fails on type mismatches; non-numbers are flagged instead.
func (p *Points) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = Points{Raw: "null"}
		return nil
	}

	var value float64
	if err := json.Unmarshal(trimmed, &value); err == nil {
		*p = NewPoints(value)
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*p = Points{Raw: text}
		return nil
	}

	*p = Points{Raw: string(trimmed)}
	return nil
}

// MarshalJSON emits numeric points as numbers and anything else as a string.
func (p Points) MarshalJSON() ([]byte, error) {
	if p.Numeric && !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
		return json.Marshal(p.Value)
	}
	return json.Marshal(p.Raw)
}
