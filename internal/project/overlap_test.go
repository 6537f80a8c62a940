package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedpha/pedpha/internal/gff"
)

// transcript builds a phased transcript from {exonStart, exonStop, cdsStart,
// cdsStop} tuples; zero CDS bounds mean a non-coding exon.
func transcript(id string, s gff.Strand, exons ...[4]int64) *gff.MRNA {
	m := &gff.MRNA{ID: id, Strand: s}
	for i, x := range exons {
		e := &gff.Exon{ID: id + ".e" + string(rune('1'+i)), Bounds: gff.NewBounds(x[0], x[1])}
		if x[2] != 0 {
			e.CDS = &gff.CDS{Bounds: gff.NewBounds(x[2], x[3])}
		}
		m.AddExon(e)
	}
	m.CalculatePhases()
	return m
}

func plusTranscript() *gff.MRNA {
	return transcript("a.1", gff.Forward,
		[4]int64{100, 109, 0, 0},
		[4]int64{110, 200, 150, 200},
		[4]int64{300, 400, 300, 400},
		[4]int64{600, 900, 600, 603},
		[4]int64{910, 930, 0, 0},
	)
}

func minusTranscript() *gff.MRNA {
	return transcript("b.1", gff.Reverse,
		[4]int64{800, 900, 0, 0},
		[4]int64{600, 700, 600, 650},
		[4]int64{400, 500, 400, 500},
		[4]int64{200, 300, 297, 300},
		[4]int64{10, 150, 0, 0},
	)
}

func protein(label string, start, stop int64) Query {
	return Query{Label: label, Bounds: gff.Bounds{Start: start, Stop: stop}, Unit: UnitProtein}
}

func TestQueryNucleotide(t *testing.T) {
	assert.Equal(t, gff.Bounds{Start: 1, Stop: 6}, protein("z", 1, 2).Nucleotide())
	assert.Equal(t, gff.Bounds{Start: 49, Stop: 156}, protein("z", 17, 52).Nucleotide())

	q := Query{Bounds: gff.Bounds{Start: 4, Stop: 8}, Unit: UnitTranscript}
	assert.Equal(t, gff.Bounds{Start: 4, Stop: 8}, q.Nucleotide())
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "protein", UnitProtein.String())
	assert.Equal(t, "transcript", UnitTranscript.String())
	assert.Equal(t, "Unit(7)", Unit(7).String())
}

func TestProject_FirstResidues(t *testing.T) {
	got := Project(plusTranscript(), protein("z", 1, 2))

	require.Len(t, got, 1)
	o := got[0]
	assert.Equal(t, "z", o.Label)
	assert.Equal(t, "a.1", o.TranscriptID)
	assert.Equal(t, 2, o.ExonNum)
	assert.Equal(t, gff.Forward, o.Strand)
	assert.Equal(t, gff.Bounds{Start: 110, Stop: 200}, o.Exon)
	assert.Equal(t, gff.Bounds{Start: 150, Stop: 155}, o.Genomic)
	assert.Equal(t, gff.Bounds{Start: 1, Stop: 6}, o.Local)
	assert.Equal(t, gff.Bounds{Start: 1, Stop: 6}, o.Coding)
	assert.Equal(t, ".-0", o.Phase.String())
}

func TestProject_SpansExons(t *testing.T) {
	tests := []struct {
		name    string
		m       *gff.MRNA
		query   Query
		exons   []int
		genomic []gff.Bounds
		local   []gff.Bounds
		coding  []gff.Bounds
	}{
		{
			name:    "plus strand across three exons",
			m:       plusTranscript(),
			query:   protein("span", 17, 52),
			exons:   []int{2, 3, 4},
			genomic: []gff.Bounds{{Start: 198, Stop: 200}, {Start: 300, Stop: 400}, {Start: 600, Stop: 603}},
			local:   []gff.Bounds{{Start: 49, Stop: 51}, {Start: 1, Stop: 101}, {Start: 1, Stop: 4}},
			coding:  []gff.Bounds{{Start: 49, Stop: 51}, {Start: 52, Stop: 152}, {Start: 153, Stop: 156}},
		},
		{
			name:    "plus strand inside second coding exon",
			m:       plusTranscript(),
			query:   protein("mid", 20, 21),
			exons:   []int{3},
			genomic: []gff.Bounds{{Start: 306, Stop: 311}},
			local:   []gff.Bounds{{Start: 7, Stop: 12}},
			coding:  []gff.Bounds{{Start: 58, Stop: 63}},
		},
		{
			name:    "minus strand first residues",
			m:       minusTranscript(),
			query:   protein("z", 1, 2),
			exons:   []int{2},
			genomic: []gff.Bounds{{Start: 645, Stop: 650}},
			local:   []gff.Bounds{{Start: 1, Stop: 6}},
			coding:  []gff.Bounds{{Start: 1, Stop: 6}},
		},
		{
			name:    "minus strand across exons",
			m:       minusTranscript(),
			query:   protein("span", 17, 52),
			exons:   []int{2, 3, 4},
			genomic: []gff.Bounds{{Start: 600, Stop: 602}, {Start: 400, Stop: 500}, {Start: 297, Stop: 300}},
			local:   []gff.Bounds{{Start: 49, Stop: 51}, {Start: 1, Stop: 101}, {Start: 1, Stop: 4}},
			coding:  []gff.Bounds{{Start: 49, Stop: 51}, {Start: 52, Stop: 152}, {Start: 153, Stop: 156}},
		},
		{
			name:    "transcript units",
			m:       plusTranscript(),
			query:   Query{Label: "nt", Bounds: gff.Bounds{Start: 50, Stop: 53}, Unit: UnitTranscript},
			exons:   []int{2, 3},
			genomic: []gff.Bounds{{Start: 199, Stop: 200}, {Start: 300, Stop: 301}},
			local:   []gff.Bounds{{Start: 50, Stop: 51}, {Start: 1, Stop: 2}},
			coding:  []gff.Bounds{{Start: 50, Stop: 51}, {Start: 52, Stop: 53}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.m, tt.query)
			require.Len(t, got, len(tt.exons))
			for i, o := range got {
				assert.Equal(t, tt.exons[i], o.ExonNum, "overlap %d", i)
				assert.Equal(t, tt.genomic[i], o.Genomic, "overlap %d", i)
				assert.Equal(t, tt.local[i], o.Local, "overlap %d", i)
				assert.Equal(t, tt.coding[i], o.Coding, "overlap %d", i)
				assert.LessOrEqual(t, o.Genomic.Start, o.Genomic.Stop)
			}
		})
	}
}

func TestProject_FullProteinReproducesCDS(t *testing.T) {
	for _, m := range []*gff.MRNA{plusTranscript(), minusTranscript()} {
		proteinLength := m.CodingLength() / 3
		// Round up so the last partial codon is covered too.
		if m.CodingLength()%3 != 0 {
			proteinLength++
		}

		got := Project(m, protein("full", 1, proteinLength))

		var coding []gff.Bounds
		for _, e := range m.Exons {
			if e.IsCoding() {
				coding = append(coding, e.CDS.Bounds)
			}
		}
		require.Len(t, got, len(coding), m.ID)
		for i, o := range got {
			assert.Equal(t, coding[i], o.Genomic, "%s overlap %d", m.ID, i)
		}
	}
}

func TestProject_Empty(t *testing.T) {
	tests := []struct {
		name  string
		m     *gff.MRNA
		query Query
	}{
		{"past the coding region", plusTranscript(), protein("far", 60, 70)},
		{"non-coding transcript", transcript("nc.1", gff.Forward, [4]int64{100, 200, 0, 0}), protein("z", 1, 2)},
		{"no exons", &gff.MRNA{ID: "x.1", Strand: gff.Forward}, protein("z", 1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Project(tt.m, tt.query))
		})
	}
}

func TestProject_Idempotent(t *testing.T) {
	m := plusTranscript()
	q := protein("span", 17, 52)
	assert.Equal(t, Project(m, q), Project(m, q))
}
