package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// Score is a metric value which may be undefined, e.g. a precision computed
// from 0/0. The zero value is null.
type Score struct {
	Value float64
	Valid bool
}

// Null is the undefined score
var Null = Score{}

// Some wraps a float; NaN and infinities become Null
func Some(v float64) Score {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}
	return Score{Value: v, Valid: true}
}

// Ratio returns num/den, or Null when den is zero or either side is null
func Ratio(num, den Score) Score {
	if !num.Valid || !den.Valid || den.Value == 0 {
		return Null
	}
	return Some(num.Value / den.Value)
}

// HarmonicMean returns 2ab/(a+b), Null if a+b == 0 or either side is null
func HarmonicMean(a, b Score) Score {
	if !a.Valid || !b.Valid {
		return Null
	}
	sum := a.Value + b.Value
	if sum == 0 {
		return Null
	}
	return Some(2 * a.Value * b.Value / sum)
}

// Add returns a+b (Null if either side is null)
func (s Score) Add(o Score) Score {
	if !s.Valid || !o.Valid {
		return Null
	}
	return Some(s.Value + o.Value)
}

// Sub returns s-o (Null if either side is null)
func (s Score) Sub(o Score) Score {
	if !s.Valid || !o.Valid {
		return Null
	}
	return Some(s.Value - o.Value)
}

// Scale multiplies a valid score by f
func (s Score) Scale(f float64) Score {
	if !s.Valid {
		return Null
	}
	return Some(s.Value * f)
}

// OrZero returns the value, or 0 when null
func (s Score) OrZero() float64 {
	if !s.Valid {
		return 0
	}
	return s.Value
}

// Equal reports whether both scores are null or hold the same value
func (s Score) Equal(o Score) bool {
	if s.Valid != o.Valid {
		return false
	}
	return !s.Valid || s.Value == o.Value
}

// Format renders the score with the given number of decimals (-1 for the
// shortest representation). Null renders as an empty string.
func (s Score) Format(decimals int) string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'f', decimals, 64)
}

func (s Score) String() string {
	if !s.Valid {
		return "null"
	}
	return strconv.FormatFloat(s.Value, 'g', -1, 64)
}

// MarshalJSON encodes null scores as JSON null
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a number or null
func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Null
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Some(v)
	return nil
}
