// Package gff reads gene/mRNA/exon/CDS annotation records and builds
// validated gene models from them.
package gff

import (
	"strconv"
	"strings"
)

// Feature types understood by the model builder. Records of any other type
// are decoded but ignored.
const (
	TypeGene = "gene"
	TypeMRNA = "mRNA"
	TypeExon = "exon"
	TypeCDS  = "CDS"
)

// numFields is the exact column count of a feature record.
const numFields = 9

// Record is one decoded feature line.
type Record struct {
	SeqID       string // Sequence the feature maps to
	Source      string
	Type        string // gene, mRNA, exon, CDS, ...
	Start       int64  // Raw start column
	Stop        int64  // Raw stop column
	Score       string
	Strand      Strand
	Phase       string // Raw phase column, not used for phase calculation
	Description string // Free-text attribute column
	Bounds      Bounds // (min, max) of Start and Stop
}

// ID returns the identifier carried in the description column.
func (r *Record) ID() (string, bool) {
	return ParseID(r.Description)
}

// IsChild returns true if the record is an mRNA, exon or CDS.
func (r *Record) IsChild() bool {
	switch r.Type {
	case TypeMRNA, TypeExon, TypeCDS:
		return true
	}
	return false
}

// ParseRecord decodes a single tab-delimited line. ok is false when the line
// is not a feature record (comments, headers, wrong column count or
// non-integer coordinates).
func ParseRecord(line string) (rec Record, ok bool) {
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return Record{}, false
	}

	start, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return Record{}, false
	}
	stop, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		return Record{}, false
	}

	return Record{
		SeqID:       fields[0],
		Source:      fields[1],
		Type:        fields[2],
		Start:       start,
		Stop:        stop,
		Score:       fields[5],
		Strand:      Strand(fields[6]),
		Phase:       fields[7],
		Description: fields[8],
		Bounds:      NewBounds(start, stop),
	}, true
}

// ParseID extracts the identifier from a description of the form
// "ID=<token>;..." or "ID=<token>". The token runs up to the first ';'.
func ParseID(desc string) (string, bool) {
	rest, found := strings.CutPrefix(desc, "ID=")
	if !found {
		return "", false
	}
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
