package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pedpha/pedpha/internal/gff"
)

type mapLookup map[string][]Query

func (l mapLookup) Lookup(transcriptID string) []Query {
	return l[transcriptID]
}

// sliceSource yields genes from a slice, then an optional error.
type sliceSource struct {
	genes []*gff.Gene
	err   error
}

func (s *sliceSource) Next() (*gff.Gene, error) {
	if len(s.genes) == 0 {
		return nil, s.err
	}
	g := s.genes[0]
	s.genes = s.genes[1:]
	return g, nil
}

type recordingWriter struct {
	rows    []Overlap
	flushed bool
}

func (w *recordingWriter) WriteHeader() error { return nil }

func (w *recordingWriter) Write(o Overlap) error {
	w.rows = append(w.rows, o)
	return nil
}

func (w *recordingWriter) Flush() error {
	w.flushed = true
	return nil
}

// unphased returns a gene whose transcripts have not had phases computed.
func unphased() []*gff.Gene {
	a := &gff.Gene{ID: "a", SeqID: "chr1", Strand: gff.Forward}
	a.AddMRNA(plusTranscript())
	a.AddMRNA(transcript("a.2", gff.Forward, [4]int64{100, 200, 100, 200}))
	b := &gff.Gene{ID: "b", SeqID: "chr1", Strand: gff.Reverse}
	b.AddMRNA(minusTranscript())

	for _, g := range []*gff.Gene{a, b} {
		for _, m := range g.MRNAs {
			for _, e := range m.Exons {
				e.Phase = gff.PhasePair{}
			}
		}
	}
	return []*gff.Gene{a, b}
}

func TestProjector_ProjectGene(t *testing.T) {
	genes := unphased()
	p := NewProjector(mapLookup{
		"a.1": {protein("z", 1, 2), protein("span", 17, 52)},
	})

	got := p.ProjectGene(genes[0])
	require.Len(t, got, 4)
	assert.Equal(t, "z", got[0].Label)
	assert.Equal(t, "span", got[1].Label)
	// Phases are computed before projecting.
	assert.Equal(t, ".-0", got[0].Phase.String())
	assert.Equal(t, "0-2", got[2].Phase.String())

	assert.Empty(t, p.ProjectGene(genes[1]))
}

func TestProjector_ProjectAll(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewProjector(mapLookup{
		"a.1": {protein("z", 1, 2)},
		"b.1": {protein("z", 1, 2), protein("far", 500, 600)},
	})
	p.SetLogger(zap.New(core))

	w := &recordingWriter{}
	require.NoError(t, p.ProjectAll(&sliceSource{genes: unphased()}, w))

	require.Len(t, w.rows, 2)
	assert.True(t, w.flushed)
	assert.Equal(t, "a.1", w.rows[0].TranscriptID)
	assert.Equal(t, gff.Bounds{Start: 150, Stop: 155}, w.rows[0].Genomic)
	assert.Equal(t, "b.1", w.rows[1].TranscriptID)
	assert.Equal(t, gff.Bounds{Start: 645, Stop: 650}, w.rows[1].Genomic)

	assert.Equal(t, 1, logs.FilterMessage("interval does not overlap coding region").Len())
	done := logs.FilterMessage("projection complete").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(2), done[0].ContextMap()["genes"])
	assert.Equal(t, int64(2), done[0].ContextMap()["overlaps"])
}

func TestProjector_ProjectAllSourceError(t *testing.T) {
	p := NewProjector(mapLookup{})
	w := &recordingWriter{}

	err := p.ProjectAll(&sliceSource{err: errors.New("disk on fire")}, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.False(t, w.flushed)
}
