package project

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pedpha/pedpha/internal/gff"
)

// Lookup supplies the query intervals for a transcript. Unknown transcripts
// return an empty slice.
type Lookup interface {
	Lookup(transcriptID string) []Query
}

// GeneSource yields gene models one at a time.
// Next returns nil, nil when there are no more genes.
type GeneSource interface {
	Next() (*gff.Gene, error)
}

// OverlapWriter defines the interface for writing projection results.
type OverlapWriter interface {
	WriteHeader() error
	Write(o Overlap) error
	Flush() error
}

// Projector projects the intervals of a Lookup onto streamed gene models.
type Projector struct {
	lookup Lookup
	logger *zap.Logger
}

// NewProjector creates a projector reading query intervals from l.
func NewProjector(l Lookup) *Projector {
	return &Projector{
		lookup: l,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for debug and info messages.
func (p *Projector) SetLogger(l *zap.Logger) {
	p.logger = l
}

// ProjectGene computes phases for every transcript of g and projects each of
// the transcript's query intervals onto it.
func (p *Projector) ProjectGene(g *gff.Gene) []Overlap {
	var out []Overlap
	for _, m := range g.MRNAs {
		queries := p.lookup.Lookup(m.ID)
		if len(queries) == 0 {
			continue
		}
		m.CalculatePhases()
		for _, q := range queries {
			overlaps := Project(m, q)
			if len(overlaps) == 0 {
				p.logger.Debug("interval does not overlap coding region",
					zap.String("transcript", m.ID),
					zap.String("label", q.Label),
					zap.Int64("start", q.Bounds.Start),
					zap.Int64("stop", q.Bounds.Stop))
			}
			out = append(out, overlaps...)
		}
	}
	return out
}

// ProjectAll projects every gene from src and writes the overlaps to w in
// input order.
func (p *Projector) ProjectAll(src GeneSource, w OverlapWriter) error {
	var genes, overlaps int
	for {
		g, err := src.Next()
		if err != nil {
			return fmt.Errorf("read gene: %w", err)
		}
		if g == nil {
			break
		}
		genes++

		for _, o := range p.ProjectGene(g) {
			if err := w.Write(o); err != nil {
				return fmt.Errorf("write overlap: %w", err)
			}
			overlaps++
		}
	}

	p.logger.Info("projection complete",
		zap.Int("genes", genes),
		zap.Int("overlaps", overlaps))

	return w.Flush()
}
