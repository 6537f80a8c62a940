package gff

import "fmt"

// Strand is the orientation of a feature, "+" or "-".
type Strand string

const (
	Forward Strand = "+"
	Reverse Strand = "-"
)

// IsForward returns true for the "+" strand.
func (s Strand) IsForward() bool {
	return s == Forward
}

// IsReverse returns true for the "-" strand.
func (s Strand) IsReverse() bool {
	return s == Reverse
}

// Bounds is a closed, 1-based genomic or transcript-relative range.
type Bounds struct {
	Start int64
	Stop  int64
}

// NewBounds returns the range spanning a and b regardless of their order.
func NewBounds(a, b int64) Bounds {
	if a > b {
		a, b = b, a
	}
	return Bounds{Start: a, Stop: b}
}

// Len returns the number of positions in the range.
func (b Bounds) Len() int64 {
	return b.max() - b.min() + 1
}

// Oriented returns the (start, stop) pair in transcription order: unchanged
// on the forward strand and swapped on the reverse strand.
func (b Bounds) Oriented(s Strand) (start, stop int64) {
	if s.IsReverse() {
		return b.max(), b.min()
	}
	return b.min(), b.max()
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%d, %d)", b.Start, b.Stop)
}

func (b Bounds) min() int64 {
	return min(b.Start, b.Stop)
}

func (b Bounds) max() int64 {
	return max(b.Start, b.Stop)
}

// Downstream returns true if point a is at or past point b in the
// transcription direction of strand s.
func Downstream(a, b int64, s Strand) bool {
	if s.IsForward() {
		return a >= b
	}
	return a <= b
}

// Upstream returns true if point a is at or before point b in the
// transcription direction of strand s.
func Upstream(a, b int64, s Strand) bool {
	if s.IsForward() {
		return a <= b
	}
	return a >= b
}

// Within returns true if inner lies entirely inside outer, endpoints
// inclusive.
func Within(inner, outer Bounds) bool {
	return inner.min() >= outer.min() && inner.max() <= outer.max()
}

// Overlaps returns true if either endpoint of x lies in y, or y lies
// entirely inside x.
func Overlaps(x, y Bounds) bool {
	return containsPoint(y, x.Start) || containsPoint(y, x.Stop) || Within(y, x)
}

func containsPoint(b Bounds, p int64) bool {
	return p >= b.min() && p <= b.max()
}
