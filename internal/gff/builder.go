package gff

import "go.uber.org/zap"

// buildState is the state of the gene-model fold.
type buildState int

const (
	// stateNoGene: no gene is open. Child records are rejected.
	stateNoGene buildState = iota
	// stateBuilding: a gene is open and collecting children.
	stateBuilding
	// stateDiscarding: the open gene failed a per-record check and was
	// dropped. Its remaining children are skipped until the next gene.
	stateDiscarding
)

// BuildStats counts what the builder did with its input.
type BuildStats struct {
	Records  int // Feature records stepped
	Genes    int // Genes emitted
	Dropped  int // Genes dropped as invalid
	Rejected int // Child records rejected without a gene to attach to
	Skipped  int // Child records skipped because their gene was dropped
}

// Builder accumulates decoded records into gene models. It is the explicit
// accumulator of a fold over the record stream: Step is called once per
// record and returns a completed gene at each gene boundary, Finish flushes
// the last gene at end of input.
//
// Structural violations are reported to the diagnostic handler as they are
// found. Identifier, strand and sequence-id violations drop the open gene
// immediately; placement violations (containment, exon order and overlap)
// mark it invalid while its remaining records are still collected.
type Builder struct {
	state   buildState
	gene    *Gene
	valid   bool
	stats   BuildStats
	handler DiagnosticHandler
	logger  *zap.Logger
}

// NewBuilder creates a builder with no gene open.
func NewBuilder() *Builder {
	return &Builder{
		handler: func(Diagnostic) {},
		logger:  zap.NewNop(),
	}
}

// SetDiagnosticHandler sets the receiver of structural diagnostics.
func (b *Builder) SetDiagnosticHandler(fn DiagnosticHandler) {
	if fn == nil {
		fn = func(Diagnostic) {}
	}
	b.handler = fn
}

// SetLogger sets the logger for debug messages.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// Stats returns counters accumulated so far.
func (b *Builder) Stats() BuildStats {
	return b.stats
}

// Step feeds one decoded record and its raw line to the builder. It returns
// the previous gene when rec opens a new gene and the previous gene passed
// validation, nil otherwise. Records of unknown type are ignored.
func (b *Builder) Step(rec Record, line string) *Gene {
	b.stats.Records++

	switch {
	case rec.Type == TypeGene:
		done := b.finalize()
		id, _ := rec.ID()
		b.gene = &Gene{
			ID:     id,
			SeqID:  rec.SeqID,
			Bounds: rec.Bounds,
			Strand: rec.Strand,
		}
		b.valid = true
		b.state = stateBuilding
		return done

	case rec.IsChild():
		b.addChild(rec, line)
	}
	return nil
}

// Finish validates and returns the gene still open at end of input, or nil.
func (b *Builder) Finish() *Gene {
	return b.finalize()
}

func (b *Builder) report(d Diagnostic) {
	b.handler(d)
}

// finalize closes the open gene and returns it if it is valid.
func (b *Builder) finalize() *Gene {
	g, valid := b.gene, b.valid && b.state == stateBuilding
	b.gene, b.valid, b.state = nil, false, stateNoGene
	if g == nil {
		return nil
	}

	if !valid {
		// Already reported where the violation was found.
		b.stats.Dropped++
		b.logger.Debug("dropping invalid gene", zap.String("gene", g.ID))
		return nil
	}
	if problems := ValidateGene(g); len(problems) > 0 {
		for _, d := range problems {
			b.report(d)
		}
		b.stats.Dropped++
		b.logger.Debug("dropping gene failing whole-gene validation",
			zap.String("gene", g.ID), zap.Int("problems", len(problems)))
		return nil
	}

	b.stats.Genes++
	return g
}

// discard drops the open gene and skips its remaining children.
func (b *Builder) discard() {
	if b.gene != nil {
		b.stats.Dropped++
		b.logger.Debug("discarding gene", zap.String("gene", b.gene.ID))
	}
	b.gene, b.valid, b.state = nil, false, stateDiscarding
}

func (b *Builder) addChild(rec Record, line string) {
	switch b.state {
	case stateNoGene:
		b.stats.Rejected++
		b.report(outsideGeneDiagnostic(rec, line))
		return
	case stateDiscarding:
		b.stats.Skipped++
		return
	}

	if !b.checkElement(rec, line) {
		b.discard()
		return
	}

	id, _ := rec.ID()
	g := b.gene

	switch rec.Type {
	case TypeMRNA:
		m := &MRNA{ID: id, Bounds: rec.Bounds, Strand: g.Strand}
		g.AddMRNA(m)
		if !Within(m.Bounds, g.Bounds) {
			b.invalidate(mrnaBoundsDiagnostic(m, g, line))
		}

	case TypeExon:
		m := g.lastMRNA()
		if m == nil {
			b.stats.Rejected++
			b.report(noParentDiagnostic(rec, TypeMRNA, line))
			return
		}
		prev := m.lastExon()
		e := &Exon{ID: id, Bounds: rec.Bounds}
		m.AddExon(e)
		if !Within(e.Bounds, m.Bounds) {
			b.invalidate(exonBoundsDiagnostic(e, m, line))
		}
		if prev != nil {
			for _, d := range checkExonPair(prev, e, g.Strand, line) {
				b.invalidate(d)
			}
		}

	case TypeCDS:
		var e *Exon
		if m := g.lastMRNA(); m != nil {
			e = m.lastExon()
		}
		if e == nil {
			b.stats.Rejected++
			b.report(noParentDiagnostic(rec, TypeExon, line))
			return
		}
		c := &CDS{ID: id, Bounds: rec.Bounds}
		e.CDS = c
		if !Within(c.Bounds, e.Bounds) {
			b.invalidate(cdsBoundsDiagnostic(c, e, line))
		}
	}
}

// invalidate reports d and marks the open gene as not to be emitted.
func (b *Builder) invalidate(d Diagnostic) {
	b.valid = false
	b.report(d)
}

// checkElement applies the identifier, strand and sequence-id checks common
// to every child record.
func (b *Builder) checkElement(rec Record, line string) bool {
	ok := true
	if _, hasID := rec.ID(); !hasID {
		b.report(missingIDDiagnostic(rec, line))
		ok = false
	}
	if rec.Strand != b.gene.Strand {
		b.report(strandDiagnostic(line))
		ok = false
	}
	if rec.SeqID != b.gene.SeqID {
		b.report(seqIDDiagnostic(rec, line))
		ok = false
	}
	return ok
}

// checkExonPair checks that e neither overlaps nor precedes prev in the
// transcription direction of strand s.
func checkExonPair(prev, e *Exon, s Strand, line string) []Diagnostic {
	var out []Diagnostic
	if Overlaps(e.Bounds, prev.Bounds) {
		out = append(out, exonOverlapDiagnostic(e, prev, line))
	}
	eStart, _ := e.Bounds.Oriented(s)
	_, prevStop := prev.Bounds.Oriented(s)
	if !Downstream(eStart, prevStop, s) {
		out = append(out, exonOrderDiagnostic(e, prev, line))
	}
	return out
}

// ValidateGene re-checks every placement invariant of a finished gene model
// and returns one diagnostic per violation. A gene with no diagnostics is
// safe to hand to callers.
func ValidateGene(g *Gene) []Diagnostic {
	var out []Diagnostic
	for _, m := range g.MRNAs {
		if m.ID == "" {
			out = append(out, missingIDDiagnostic(Record{Type: TypeMRNA}, ""))
		}
		if m.Strand != g.Strand {
			out = append(out, strandDiagnostic(""))
		}
		if !Within(m.Bounds, g.Bounds) {
			out = append(out, mrnaBoundsDiagnostic(m, g, ""))
		}

		var prev *Exon
		for _, e := range m.Exons {
			if e.ID == "" {
				out = append(out, missingIDDiagnostic(Record{Type: TypeExon}, ""))
			}
			if !Within(e.Bounds, m.Bounds) {
				out = append(out, exonBoundsDiagnostic(e, m, ""))
			}
			if prev != nil {
				out = append(out, checkExonPair(prev, e, g.Strand, "")...)
			}
			if c := e.CDS; c != nil {
				if c.ID == "" {
					out = append(out, missingIDDiagnostic(Record{Type: TypeCDS}, ""))
				}
				if !Within(c.Bounds, e.Bounds) {
					out = append(out, cdsBoundsDiagnostic(c, e, ""))
				}
			}
			prev = e
		}
	}
	return out
}
