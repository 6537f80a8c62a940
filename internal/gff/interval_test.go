package gff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBounds(t *testing.T) {
	assert.Equal(t, Bounds{Start: 10, Stop: 20}, NewBounds(10, 20))
	assert.Equal(t, Bounds{Start: 10, Stop: 20}, NewBounds(20, 10))
	assert.Equal(t, int64(11), NewBounds(20, 10).Len())
	assert.Equal(t, int64(1), NewBounds(5, 5).Len())
	assert.Equal(t, "(10, 20)", NewBounds(20, 10).String())
}

func TestOriented(t *testing.T) {
	b := Bounds{Start: 100, Stop: 200}

	start, stop := b.Oriented(Forward)
	assert.Equal(t, int64(100), start)
	assert.Equal(t, int64(200), stop)

	start, stop = b.Oriented(Reverse)
	assert.Equal(t, int64(200), start)
	assert.Equal(t, int64(100), stop)
}

func TestDownstreamUpstream(t *testing.T) {
	tests := []struct {
		a, b       int64
		s          Strand
		downstream bool
		upstream   bool
	}{
		{10, 5, Forward, true, false},
		{5, 10, Forward, false, true},
		{7, 7, Forward, true, true},
		{10, 5, Reverse, false, true},
		{5, 10, Reverse, true, false},
		{7, 7, Reverse, true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.downstream, Downstream(tt.a, tt.b, tt.s), "Downstream(%d, %d, %s)", tt.a, tt.b, tt.s)
		assert.Equal(t, tt.upstream, Upstream(tt.a, tt.b, tt.s), "Upstream(%d, %d, %s)", tt.a, tt.b, tt.s)
	}
}

func TestWithin(t *testing.T) {
	outer := Bounds{Start: 100, Stop: 200}

	tests := []struct {
		name  string
		inner Bounds
		want  bool
	}{
		{"inside", Bounds{Start: 120, Stop: 180}, true},
		{"equal", Bounds{Start: 100, Stop: 200}, true},
		{"shared start", Bounds{Start: 100, Stop: 150}, true},
		{"left overhang", Bounds{Start: 99, Stop: 150}, false},
		{"right overhang", Bounds{Start: 150, Stop: 201}, false},
		{"outside", Bounds{Start: 300, Stop: 400}, false},
		{"unnormalized", Bounds{Start: 180, Stop: 120}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(tt.inner, outer))
		})
	}
}

func TestOverlaps(t *testing.T) {
	y := Bounds{Start: 100, Stop: 200}

	tests := []struct {
		name string
		x    Bounds
		want bool
	}{
		{"start inside", Bounds{Start: 150, Stop: 250}, true},
		{"stop inside", Bounds{Start: 50, Stop: 100}, true},
		{"contains", Bounds{Start: 50, Stop: 250}, true},
		{"contained", Bounds{Start: 120, Stop: 130}, true},
		{"adjacent", Bounds{Start: 201, Stop: 300}, false},
		{"before", Bounds{Start: 1, Stop: 99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.x, y))
			assert.Equal(t, tt.want, Overlaps(y, tt.x), "overlap is symmetric")
		})
	}
}
