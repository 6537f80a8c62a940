package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/project"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// testGene builds a two-transcript forward-strand gene with phases computed.
func testGene() *gff.Gene {
	g := &gff.Gene{ID: "gene1", SeqID: "chr1", Bounds: gff.Bounds{Start: 100, Stop: 900}, Strand: gff.Forward}

	m1 := &gff.MRNA{ID: "mrna1", Bounds: gff.Bounds{Start: 100, Stop: 900}, Strand: gff.Forward}
	m1.AddExon(&gff.Exon{ID: "e1", Bounds: gff.Bounds{Start: 100, Stop: 200}})
	m1.AddExon(&gff.Exon{ID: "e2", Bounds: gff.Bounds{Start: 300, Stop: 400},
		CDS: &gff.CDS{ID: "c2", Bounds: gff.Bounds{Start: 350, Stop: 400}}})
	m1.AddExon(&gff.Exon{ID: "e3", Bounds: gff.Bounds{Start: 500, Stop: 600},
		CDS: &gff.CDS{ID: "c3", Bounds: gff.Bounds{Start: 500, Stop: 550}}})
	g.AddMRNA(m1)

	m2 := &gff.MRNA{ID: "mrna2", Bounds: gff.Bounds{Start: 300, Stop: 600}, Strand: gff.Forward}
	m2.AddExon(&gff.Exon{ID: "e4", Bounds: gff.Bounds{Start: 300, Stop: 600}})
	g.AddMRNA(m2)

	gff.CalculatePhases(g)
	return g
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
	assert.Empty(t, s.Path())
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "models.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
	assert.Equal(t, path, s.Path())
}

func TestInsertAndGetGene(t *testing.T) {
	s := openInMemory(t)
	want := testGene()
	require.NoError(t, s.InsertGene(want))

	got, err := s.GetGene("gene1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "chr1", got.SeqID)
	assert.Equal(t, gff.Forward, got.Strand)
	assert.Equal(t, want.Bounds, got.Bounds)
	require.Len(t, got.MRNAs, 2)
	assert.Equal(t, "mrna1", got.MRNAs[0].ID)
	assert.Equal(t, 1, got.MRNAs[0].Tid)
	assert.Equal(t, "mrna2", got.MRNAs[1].ID)

	exons := got.MRNAs[0].Exons
	require.Len(t, exons, 3)
	assert.Nil(t, exons[0].CDS)
	assert.Equal(t, ".-.", exons[0].Phase.String())
	require.NotNil(t, exons[1].CDS)
	assert.Equal(t, "c2", exons[1].CDS.ID)
	assert.Equal(t, gff.Bounds{Start: 350, Stop: 400}, exons[1].CDS.Bounds)
	assert.Equal(t, ".-0", exons[1].Phase.String())
	assert.Equal(t, "0-.", exons[2].Phase.String())
	assert.Equal(t, 3, exons[2].Num)
}

func TestGetGeneNotFound(t *testing.T) {
	s := openInMemory(t)

	g, err := s.GetGene("missing")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestGeneCount(t *testing.T) {
	s := openInMemory(t)

	n, err := s.GeneCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.InsertGene(testGene()))
	n, err = s.GeneCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteOverlaps(t *testing.T) {
	s := openInMemory(t)
	g := testGene()

	overlaps := project.Project(g.MRNAs[0], project.Query{
		Label:  "PF00001",
		Bounds: gff.Bounds{Start: 10, Stop: 20},
		Unit:   project.UnitProtein,
	})
	require.NotEmpty(t, overlaps)
	require.NoError(t, s.WriteOverlaps(overlaps))

	n, err := s.OverlapCount()
	require.NoError(t, err)
	assert.Equal(t, len(overlaps), n)

	got, err := s.OverlapsByTranscript("mrna1")
	require.NoError(t, err)
	require.Len(t, got, len(overlaps))
	for i := range overlaps {
		assert.Equal(t, overlaps[i].Label, got[i].Label)
		assert.Equal(t, overlaps[i].ExonNum, got[i].ExonNum)
		assert.Equal(t, overlaps[i].Genomic, got[i].Genomic)
		assert.Equal(t, overlaps[i].Local, got[i].Local)
	}
}

func TestWriteOverlapsEmpty(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteOverlaps(nil))

	n, err := s.OverlapCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSourceFingerprint(t *testing.T) {
	s := openInMemory(t)

	path := filepath.Join(t.TempDir(), "genes.gff")
	require.NoError(t, os.WriteFile(path, []byte("##gff-version 3\n"), 0644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(16), fp.Size)

	loaded, err := s.SourceLoaded(fp)
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, s.RecordSource(fp, 3))
	loaded, err = s.SourceLoaded(fp)
	require.NoError(t, err)
	assert.True(t, loaded)

	fp.Size++
	loaded, err = s.SourceLoaded(fp)
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestClear(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.InsertGene(testGene()))
	require.NoError(t, s.Clear())

	n, err := s.GeneCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStatFileMissing(t *testing.T) {
	_, err := StatFile(filepath.Join(t.TempDir(), "nope.gff"))
	assert.Error(t, err)
}

func TestOverlapSink(t *testing.T) {
	s := openInMemory(t)
	g := testGene()

	sink := NewOverlapSink(s)
	require.NoError(t, sink.WriteHeader())
	for _, o := range project.Project(g.MRNAs[0], project.Query{
		Label:  "d1",
		Bounds: gff.Bounds{Start: 1, Stop: 34},
		Unit:   project.UnitProtein,
	}) {
		require.NoError(t, sink.Write(o))
	}

	n, err := s.OverlapCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n, "nothing is stored before Flush")

	require.NoError(t, sink.Flush())
	n, err = s.OverlapCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A second flush with an empty buffer stores nothing new.
	require.NoError(t, sink.Flush())
	n, err = s.OverlapCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
