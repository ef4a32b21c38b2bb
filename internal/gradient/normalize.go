package gradient

import (
	"fmt"

	"github.com/Faultbox/siliconia/pkg/math"
)

// Normalizer maps a raw elevation into the gradient's domain.
type Normalizer func(v float64) float64

// Normalization modes accepted by NormalizerFor.
const (
	NormalizeSpan     = "span"
	NormalizeRelative = "relative"
)

// Span divides by the size of r. This is the historical mapping: it only
// fills [0, 1] when the range starts at zero.
func Span(r math.Range) Normalizer {
	size := r.Size()
	return func(v float64) float64 {
		return v / size
	}
}

// Relative maps r.Min to 0 and r.Max to 1.
func Relative(r math.Range) Normalizer {
	lo, size := r.Min, r.Size()
	return func(v float64) float64 {
		return (v - lo) / size
	}
}

// NormalizerFor returns the normalizer named by mode. An empty mode selects
// span.
func NormalizerFor(mode string, r math.Range) (Normalizer, error) {
	switch mode {
	case "", NormalizeSpan:
		return Span(r), nil
	case NormalizeRelative:
		return Relative(r), nil
	default:
		return nil, fmt.Errorf("unknown normalization %q", mode)
	}
}
