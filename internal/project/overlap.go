// Package project maps protein-residue and transcript-relative intervals onto
// the genomic coding coordinates of a transcript.
package project

import (
	"fmt"

	"github.com/pedpha/pedpha/internal/gff"
)

// Unit is the coordinate space a query interval is expressed in.
type Unit int

const (
	UnitProtein    Unit = iota // 1-based amino-acid residues from the CDS start
	UnitTranscript             // 1-based nucleotides from the CDS start
)

func (u Unit) String() string {
	switch u {
	case UnitProtein:
		return "protein"
	case UnitTranscript:
		return "transcript"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Query is a labelled interval to project onto a transcript.
type Query struct {
	Label  string     // Domain or interval identifier
	Bounds gff.Bounds // 1-based inclusive range in Unit
	Unit   Unit
}

// Nucleotide returns the query as a nucleotide range relative to the CDS
// start. Residue i covers nucleotides (i-1)*3+1 through (i-1)*3+3.
func (q Query) Nucleotide() gff.Bounds {
	if q.Unit == UnitTranscript {
		return q.Bounds
	}
	return gff.Bounds{
		Start: (q.Bounds.Start-1)*3 + 1,
		Stop:  (q.Bounds.Stop-1)*3 + 3,
	}
}

// Overlap is the part of a query that falls on one coding exon.
type Overlap struct {
	Label        string
	TranscriptID string
	ExonNum      int
	Strand       gff.Strand
	Exon         gff.Bounds    // Genomic exon range
	Genomic      gff.Bounds    // Genomic range of the overlap, ascending
	Local        gff.Bounds    // Overlap as 1-based offsets into this exon's CDS
	Coding       gff.Bounds    // Overlap as 1-based offsets into the whole CDS
	Phase        gff.PhasePair // Phase of the exon
}

// Project maps q onto the coding exons of m and returns one Overlap per exon
// the query touches, in transcript order. Exon phases are copied as they are;
// call m.CalculatePhases first to have them set. A query outside the coding
// region, or a non-coding transcript, yields no overlaps.
func Project(m *gff.MRNA, q Query) []Overlap {
	iv := q.Nucleotide()
	remStart, remStop := iv.Start, iv.Stop

	var consumed int64
	var out []Overlap
	for _, e := range m.Exons {
		if !e.IsCoding() {
			continue
		}
		cdsLen := e.CodingLength()

		if remStart > cdsLen {
			remStart -= cdsLen
			remStop -= cdsLen
			consumed += cdsLen
			continue
		}
		if remStop < 1 {
			break
		}

		lStart := max(remStart, 1)
		lStop := min(remStop, cdsLen)
		out = append(out, Overlap{
			Label:        q.Label,
			TranscriptID: m.ID,
			ExonNum:      e.Num,
			Strand:       m.Strand,
			Exon:         e.Bounds,
			Genomic: gff.NewBounds(
				localToGenomic(lStart, e.CDS.Bounds, m.Strand),
				localToGenomic(lStop, e.CDS.Bounds, m.Strand),
			),
			Local:  gff.Bounds{Start: lStart, Stop: lStop},
			Coding: gff.Bounds{Start: consumed + lStart, Stop: consumed + lStop},
			Phase:  e.Phase,
		})

		// The rest of the query fits on this exon.
		if remStop <= cdsLen {
			break
		}
		remStart -= cdsLen
		remStop -= cdsLen
		consumed += cdsLen
	}
	return out
}

// localToGenomic converts a 1-based offset into a CDS segment to a genomic
// position, counting from the 5' end of translation.
func localToGenomic(offset int64, cds gff.Bounds, s gff.Strand) int64 {
	if s.IsReverse() {
		return cds.Stop - offset + 1
	}
	return offset + cds.Start - 1
}
