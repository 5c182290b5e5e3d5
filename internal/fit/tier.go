package fit

import (
	"fmt"
	"math"
)

// Tier is the three-way fit recommendation. The zero value is TierUnset.
type Tier int

const (
	TierUnset Tier = iota
	TierPositive
	TierNeutral
	TierNegative
)

// Ratio thresholds. Each bound is inclusive for the tier above it.
const (
	neutralRatio  = 0.8
	negativeRatio = 1.0
)

func (t Tier) String() string {
	switch t {
	case TierPositive:
		return "positive"
	case TierNeutral:
		return "neutral"
	case TierNegative:
		return "negative"
	default:
		return "unset"
	}
}

// MarshalText encodes the tier as its string form.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts the names produced by String. Unknown names decode to TierUnset.
func (t *Tier) UnmarshalText(b []byte) error {
	*t = ParseTier(string(b))
	return nil
}

// ParseTier is the inverse of String.
func ParseTier(s string) Tier {
	switch s {
	case "positive":
		return TierPositive
	case "neutral":
		return TierNeutral
	case "negative":
		return TierNegative
	default:
		return TierUnset
	}
}

// Classify maps requiredRAM/totalRAM onto a tier:
//
//	ratio <  0.8        -> TierPositive
//	0.8 <= ratio < 1.0  -> TierNeutral
//	ratio >= 1.0        -> TierNegative
//
// A non-positive or NaN totalRAM, or a NaN requiredRAM, returns TierUnset.
func Classify(requiredRAM, totalRAM float64) Tier {
	if !validInput(requiredRAM, totalRAM) {
		return TierUnset
	}
	return classifyRatio(requiredRAM / totalRAM)
}

// ClassifyStrict is Classify with an explicit error for inputs Classify
// reports as TierUnset.
func ClassifyStrict(requiredRAM, totalRAM float64) (Tier, error) {
	if !validInput(requiredRAM, totalRAM) {
		return TierUnset, fmt.Errorf("%w: required=%v total=%v", ErrInvalidInput, requiredRAM, totalRAM)
	}
	return classifyRatio(requiredRAM / totalRAM), nil
}

func validInput(requiredRAM, totalRAM float64) bool {
	if math.IsNaN(requiredRAM) || math.IsNaN(totalRAM) {
		return false
	}
	return totalRAM > 0
}

func classifyRatio(ratio float64) Tier {
	switch {
	case ratio < neutralRatio:
		return TierPositive
	case ratio < negativeRatio:
		return TierNeutral
	default:
		return TierNegative
	}
}

// Label returns the human label for a tier, or "" for TierUnset and unknown values.
func Label(t Tier) string {
	switch t {
	case TierPositive:
		return "Recommended"
	case TierNeutral:
		return "Slow on your device"
	case TierNegative:
		return "Not enough RAM"
	}
	return ""
}
