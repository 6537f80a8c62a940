// Package index provides genomic region queries over validated gene models.
package index

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"

	"github.com/pedpha/pedpha/internal/gff"
)

// Hit is an exon found by a region query, with the transcript and gene that
// own it.
type Hit struct {
	Gene *gff.Gene
	MRNA *gff.MRNA
	Exon *gff.Exon
}

// exonInterval is an exon stored in the tree as a half-open range.
type exonInterval struct {
	start, end int
	uid        uintptr
	hit        Hit
}

func (i exonInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.end > b.Start && i.start < b.End
}

func (i exonInterval) ID() uintptr {
	return i.uid
}

func (i exonInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.start, End: i.end}
}

// Index holds one interval tree of exons per sequence. Genes are added once
// and never modified afterwards.
type Index struct {
	trees map[string]*interval.IntTree
	next  uintptr
	dirty bool
}

// New creates an empty index.
func New() *Index {
	return &Index{trees: make(map[string]*interval.IntTree)}
}

// Build creates an index over all exons of the given genes.
func Build(genes []*gff.Gene) (*Index, error) {
	x := New()
	for _, g := range genes {
		if err := x.Add(g); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Add inserts every exon of g.
func (x *Index) Add(g *gff.Gene) error {
	tree, ok := x.trees[g.SeqID]
	if !ok {
		tree = &interval.IntTree{}
		x.trees[g.SeqID] = tree
	}
	for _, m := range g.MRNAs {
		for _, e := range m.Exons {
			iv := exonInterval{
				start: int(e.Bounds.Start),
				end:   int(e.Bounds.Stop) + 1,
				uid:   x.next,
				hit:   Hit{Gene: g, MRNA: m, Exon: e},
			}
			if err := tree.Insert(iv, true); err != nil {
				return fmt.Errorf("index exon %s: %w", e.ID, err)
			}
			x.next++
			x.dirty = true
		}
	}
	return nil
}

// Len returns the number of indexed exons.
func (x *Index) Len() int {
	var n int
	for _, tree := range x.trees {
		n += tree.Len()
	}
	return n
}

// Find returns the exons on seqID overlapping b, ordered by exon start and
// then by insertion order.
func (x *Index) Find(seqID string, b gff.Bounds) []Hit {
	tree, ok := x.trees[seqID]
	if !ok {
		return nil
	}
	if x.dirty {
		for _, t := range x.trees {
			t.AdjustRanges()
		}
		x.dirty = false
	}

	q := exonInterval{start: int(b.Start), end: int(b.Stop) + 1}
	found := tree.Get(q)
	sort.Slice(found, func(i, j int) bool {
		a, b := found[i].(exonInterval), found[j].(exonInterval)
		if a.start != b.start {
			return a.start < b.start
		}
		return a.uid < b.uid
	})

	hits := make([]Hit, len(found))
	for i, iv := range found {
		hits[i] = iv.(exonInterval).hit
	}
	return hits
}

// ParseRegion parses "seq:start-stop" or "seq:pos" into a sequence name and
// 1-based inclusive bounds.
func ParseRegion(s string) (string, gff.Bounds, error) {
	seqID, span, ok := strings.Cut(s, ":")
	if !ok || seqID == "" {
		return "", gff.Bounds{}, fmt.Errorf("invalid region %q: expected seq:start-stop", s)
	}

	startStr, stopStr, isRange := strings.Cut(span, "-")
	if !isRange {
		stopStr = startStr
	}
	start, err := strconv.ParseInt(strings.ReplaceAll(startStr, ",", ""), 10, 64)
	if err != nil || start < 1 {
		return "", gff.Bounds{}, fmt.Errorf("invalid region start %q", startStr)
	}
	stop, err := strconv.ParseInt(strings.ReplaceAll(stopStr, ",", ""), 10, 64)
	if err != nil || stop < 1 {
		return "", gff.Bounds{}, fmt.Errorf("invalid region stop %q", stopStr)
	}
	return seqID, gff.NewBounds(start, stop), nil
}
