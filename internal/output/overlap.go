package output

import (
	"io"
	"strconv"

	"github.com/pedpha/pedpha/internal/project"
)

// OverlapWriter writes projection results, one row per exon overlap.
type OverlapWriter struct {
	rowWriter
	local bool
}

// NewOverlapWriter creates an overlap writer. With local set, each row also
// carries the overlap as offsets into the exon's CDS.
func NewOverlapWriter(w io.Writer, delimiter string, local bool) *OverlapWriter {
	return &OverlapWriter{rowWriter: newRowWriter(w, delimiter), local: local}
}

// WriteHeader writes the header line.
func (ow *OverlapWriter) WriteHeader() error {
	columns := []string{"label", "mrna", "exon", "strand", "estart", "estop", "ostart", "ostop"}
	if ow.local {
		columns = append(columns, "lstart", "lstop")
	}
	return ow.writeHeader(append(columns, "phase"))
}

// Write writes a single overlap.
func (ow *OverlapWriter) Write(o project.Overlap) error {
	values := []string{
		o.Label,
		o.TranscriptID,
		strconv.Itoa(o.ExonNum),
		string(o.Strand),
		itoa(o.Exon.Start),
		itoa(o.Exon.Stop),
		itoa(o.Genomic.Start),
		itoa(o.Genomic.Stop),
	}
	if ow.local {
		values = append(values, itoa(o.Local.Start), itoa(o.Local.Stop))
	}
	return ow.writeRow(append(values, o.Phase.String()))
}

var _ project.OverlapWriter = (*OverlapWriter)(nil)
