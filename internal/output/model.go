package output

import (
	"io"
	"strconv"

	"github.com/pedpha/pedpha/internal/gff"
)

var modelColumns = []string{
	"seqid", "mrna", "tid", "gstart", "gstop", "strand",
	"num", "exon", "estart", "estop", "cstart", "cstop", "p5", "p3",
}

// ModelWriter writes one row per exon of a gene model, with its CDS bounds
// and phases.
type ModelWriter struct {
	rowWriter
}

// NewModelWriter creates a gene-model writer. An empty delimiter uses
// DefaultDelimiter.
func NewModelWriter(w io.Writer, delimiter string) *ModelWriter {
	return &ModelWriter{rowWriter: newRowWriter(w, delimiter)}
}

// WriteHeader writes the header line.
func (mw *ModelWriter) WriteHeader() error {
	return mw.writeHeader(modelColumns)
}

// Write writes every exon row of g. Phases are written as they are on the
// model; call gff.CalculatePhases first.
func (mw *ModelWriter) Write(g *gff.Gene) error {
	for _, m := range g.MRNAs {
		for _, e := range m.Exons {
			if err := mw.WriteExon(g, m, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteExon writes the row of a single exon of transcript m in gene g.
func (mw *ModelWriter) WriteExon(g *gff.Gene, m *gff.MRNA, e *gff.Exon) error {
	cStart, cStop := missing, missing
	if e.CDS != nil {
		cStart, cStop = itoa(e.CDS.Bounds.Start), itoa(e.CDS.Bounds.Stop)
	}
	return mw.writeRow([]string{
		g.SeqID,
		m.ID,
		strconv.Itoa(m.Tid),
		itoa(g.Bounds.Start),
		itoa(g.Bounds.Stop),
		string(g.Strand),
		strconv.Itoa(e.Num),
		e.ID,
		itoa(e.Bounds.Start),
		itoa(e.Bounds.Stop),
		cStart,
		cStop,
		e.Phase.Five.String(),
		e.Phase.Three.String(),
	})
}
