// Package domain loads tables of protein intervals (e.g. protein domains)
// keyed by transcript identifier.
package domain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/project"
)

// numColumns is the exact column count of an interval line:
// transcript ID, interval label, start, stop.
const numColumns = 4

// Table maps transcript identifiers to their protein intervals, in file order.
type Table struct {
	intervals map[string][]project.Query
	order     []string
	count     int
}

// Load reads an interval table from a plain or gzipped file ("-" for stdin).
// An empty delimiter splits columns on runs of whitespace.
func Load(path, delimiter string) (*Table, error) {
	in, err := gff.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interval file: %w", err)
	}
	defer in.Close()

	return Parse(in, delimiter)
}

// Parse reads an interval table. Every row must have exactly four columns
// and positive integer coordinates; the first bad row aborts the whole table
// with a *ParseError since the remaining rows cannot be trusted to belong
// where they claim.
func Parse(r io.Reader, delimiter string) (*Table, error) {
	t := &Table{intervals: make(map[string][]project.Query)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		// Skip comments and empty lines
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitFields(line, delimiter)
		if len(fields) != numColumns {
			return nil, &ParseError{
				Line:    lineNum,
				Message: fmt.Sprintf("each interval line must have %d columns, found %d", numColumns, len(fields)),
			}
		}

		start, errStart := strconv.ParseInt(fields[2], 10, 64)
		stop, errStop := strconv.ParseInt(fields[3], 10, 64)
		if errStart != nil || errStop != nil || start < 1 || stop < 1 {
			return nil, &ParseError{
				Line:    lineNum,
				Message: fmt.Sprintf("interval coordinates must be integers greater than 0, got %q and %q", fields[2], fields[3]),
			}
		}

		t.add(fields[0], project.Query{
			Label:  fields[1],
			Bounds: gff.NewBounds(start, stop),
			Unit:   project.UnitProtein,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan interval file: %w", err)
	}

	return t, nil
}

func splitFields(line, delimiter string) []string {
	if delimiter == "" {
		return strings.Fields(line)
	}
	fields := strings.Split(line, delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func (t *Table) add(transcriptID string, q project.Query) {
	if _, ok := t.intervals[transcriptID]; !ok {
		t.order = append(t.order, transcriptID)
	}
	t.intervals[transcriptID] = append(t.intervals[transcriptID], q)
	t.count++
}

// Lookup returns the intervals recorded for a transcript, or nil.
func (t *Table) Lookup(transcriptID string) []project.Query {
	return t.intervals[transcriptID]
}

// Transcripts returns the transcript identifiers in first-seen order.
func (t *Table) Transcripts() []string {
	return t.order
}

// Len returns the total number of intervals.
func (t *Table) Len() int {
	return t.count
}

// ParseError represents a malformed interval table row.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("interval parse error at line %d: %s", e.Line, e.Message)
}
