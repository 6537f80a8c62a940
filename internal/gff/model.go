package gff

// Gene is a validated gene model: a gene record and the mRNAs, exons and
// CDS segments that followed it in the input.
type Gene struct {
	ID     string  // Gene identifier
	SeqID  string  // Sequence the gene maps to
	Bounds Bounds  // Genomic range
	Strand Strand  // + or -
	MRNAs  []*MRNA // Transcripts in input order
}

// MRNA is a single transcript of a gene.
type MRNA struct {
	ID     string
	Bounds Bounds
	Strand Strand  // Copied from the parent gene
	Tid    int     // Transcript ordinal within the gene (1-based)
	Exons  []*Exon // Exons in input order
}

// Exon is a single exon of a transcript, with an optional coding segment.
type Exon struct {
	ID     string
	Bounds Bounds
	Num    int       // Exon ordinal within the transcript (1-based)
	CDS    *CDS      // Coding portion, nil if the exon is non-coding
	Phase  PhasePair // Set by CalculatePhases
}

// CDS is the coding segment of an exon.
type CDS struct {
	ID     string
	Bounds Bounds
}

// AddMRNA appends a transcript, numbering it by arrival order if it has no
// ordinal yet.
func (g *Gene) AddMRNA(m *MRNA) {
	if m.Tid == 0 {
		m.Tid = len(g.MRNAs) + 1
	}
	g.MRNAs = append(g.MRNAs, m)
}

// lastMRNA returns the most recently added transcript, or nil.
func (g *Gene) lastMRNA() *MRNA {
	if len(g.MRNAs) == 0 {
		return nil
	}
	return g.MRNAs[len(g.MRNAs)-1]
}

// AddExon appends an exon, numbering it by arrival order if it has no
// ordinal yet.
func (m *MRNA) AddExon(e *Exon) {
	if e.Num == 0 {
		e.Num = len(m.Exons) + 1
	}
	m.Exons = append(m.Exons, e)
}

// lastExon returns the most recently added exon, or nil.
func (m *MRNA) lastExon() *Exon {
	if len(m.Exons) == 0 {
		return nil
	}
	return m.Exons[len(m.Exons)-1]
}

// IsProteinCoding returns true if any exon carries a CDS.
func (m *MRNA) IsProteinCoding() bool {
	for _, e := range m.Exons {
		if e.IsCoding() {
			return true
		}
	}
	return false
}

// CodingLength returns the summed length of all CDS segments in nucleotides.
func (m *MRNA) CodingLength() int64 {
	var n int64
	for _, e := range m.Exons {
		n += e.CodingLength()
	}
	return n
}

// CDSBounds returns the genomic range spanned by all CDS segments.
// ok is false for a non-coding transcript.
func (m *MRNA) CDSBounds() (b Bounds, ok bool) {
	for _, e := range m.Exons {
		if !e.IsCoding() {
			continue
		}
		if !ok {
			b, ok = e.CDS.Bounds, true
			continue
		}
		b = Bounds{Start: min(b.Start, e.CDS.Bounds.Start), Stop: max(b.Stop, e.CDS.Bounds.Stop)}
	}
	return b, ok
}

// IsCoding returns true if the exon contains coding sequence.
func (e *Exon) IsCoding() bool {
	return e.CDS != nil
}

// CodingLength returns the length of the exon's CDS, 0 if non-coding.
func (e *Exon) CodingLength() int64 {
	if e.CDS == nil {
		return 0
	}
	return e.CDS.Bounds.Len()
}
