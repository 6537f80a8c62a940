package gff

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Reader yields validated gene models from a stream of feature lines.
// Genes are produced lazily, in input order; the input is read forward only.
type Reader struct {
	scanner    *bufio.Scanner
	builder    *Builder
	lineNumber int
	done       bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	// Description columns can be long
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	return &Reader{
		scanner: scanner,
		builder: NewBuilder(),
	}
}

// SetDiagnosticHandler sets the receiver of structural diagnostics.
func (r *Reader) SetDiagnosticHandler(fn DiagnosticHandler) {
	r.builder.SetDiagnosticHandler(fn)
}

// SetLogger sets the logger for debug messages.
func (r *Reader) SetLogger(l *zap.Logger) {
	r.builder.SetLogger(l)
}

// Next returns the next valid gene.
// Returns nil, nil when there are no more genes.
func (r *Reader) Next() (*Gene, error) {
	if r.done {
		return nil, nil
	}

	for r.scanner.Scan() {
		r.lineNumber++
		line := r.scanner.Text()

		rec, ok := ParseRecord(line)
		if !ok {
			continue
		}
		if g := r.builder.Step(rec, line); g != nil {
			return g, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gff line %d: %w", r.lineNumber+1, err)
	}

	r.done = true
	return r.builder.Finish(), nil
}

// All reads every remaining gene.
func (r *Reader) All() ([]*Gene, error) {
	var genes []*Gene
	for {
		g, err := r.Next()
		if err != nil {
			return genes, err
		}
		if g == nil {
			return genes, nil
		}
		genes = append(genes, g)
	}
}

// LineNumber returns the number of lines read so far.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Stats returns the builder counters accumulated so far.
func (r *Reader) Stats() BuildStats {
	return r.builder.Stats()
}
