// Package output provides delimited writers for gene-model and projection
// rows.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DefaultDelimiter separates output columns unless configured otherwise.
const DefaultDelimiter = " "

// missing is written for absent values such as the CDS of a non-coding exon.
const missing = "."

// rowWriter writes buffered delimited rows.
type rowWriter struct {
	w         *bufio.Writer
	delimiter string
}

func newRowWriter(w io.Writer, delimiter string) rowWriter {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return rowWriter{w: bufio.NewWriter(w), delimiter: delimiter}
}

// writeHeader writes the column names behind a leading '#'.
func (rw rowWriter) writeHeader(columns []string) error {
	_, err := rw.w.WriteString("#" + strings.Join(columns, rw.delimiter) + "\n")
	return err
}

func (rw rowWriter) writeRow(values []string) error {
	_, err := rw.w.WriteString(strings.Join(values, rw.delimiter) + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (rw rowWriter) Flush() error {
	return rw.w.Flush()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
