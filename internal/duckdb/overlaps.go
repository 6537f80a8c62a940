package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/project"
)

// WriteOverlaps batch-inserts projection results using the Appender API.
func (s *Store) WriteOverlaps(overlaps []project.Overlap) error {
	if len(overlaps) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "overlaps")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, o := range overlaps {
		if err := appender.AppendRow(
			o.Label, o.TranscriptID, int32(o.ExonNum), string(o.Strand),
			o.Exon.Start, o.Exon.Stop, o.Genomic.Start, o.Genomic.Stop,
			o.Local.Start, o.Local.Stop, o.Coding.Start, o.Coding.Stop,
			o.Phase.String(),
		); err != nil {
			return fmt.Errorf("append overlap: %w", err)
		}
	}

	return appender.Flush()
}

// OverlapsByTranscript returns the stored overlaps of a transcript, ordered
// by label and exon ordinal.
func (s *Store) OverlapsByTranscript(transcriptID string) ([]project.Overlap, error) {
	rows, err := s.db.Query(`
		SELECT label, transcript_id, exon_num, strand, exon_start, exon_stop,
		       start, stop, local_start, local_stop, coding_start, coding_stop
		FROM overlaps
		WHERE transcript_id = ?
		ORDER BY label, exon_num
	`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("query overlaps: %w", err)
	}
	defer rows.Close()

	var out []project.Overlap
	for rows.Next() {
		var o project.Overlap
		var strand string
		if err := rows.Scan(
			&o.Label, &o.TranscriptID, &o.ExonNum, &strand, &o.Exon.Start, &o.Exon.Stop,
			&o.Genomic.Start, &o.Genomic.Stop, &o.Local.Start, &o.Local.Stop,
			&o.Coding.Start, &o.Coding.Stop,
		); err != nil {
			return nil, fmt.Errorf("scan overlap: %w", err)
		}
		o.Strand = gff.Strand(strand)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlaps: %w", err)
	}
	return out, nil
}

// OverlapCount returns the number of stored overlaps.
func (s *Store) OverlapCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM overlaps").Scan(&count)
	return count, err
}

// OverlapSink buffers overlaps and appends them to the store on Flush.
type OverlapSink struct {
	store *Store
	buf   []project.Overlap
}

// NewOverlapSink creates a sink writing into s.
func NewOverlapSink(s *Store) *OverlapSink {
	return &OverlapSink{store: s}
}

// WriteHeader is a no-op; the overlaps table has a fixed schema.
func (k *OverlapSink) WriteHeader() error {
	return nil
}

// Write buffers a single overlap.
func (k *OverlapSink) Write(o project.Overlap) error {
	k.buf = append(k.buf, o)
	return nil
}

// Flush appends all buffered overlaps to the store.
func (k *OverlapSink) Flush() error {
	if err := k.store.WriteOverlaps(k.buf); err != nil {
		return err
	}
	k.buf = k.buf[:0]
	return nil
}

var _ project.OverlapWriter = (*OverlapSink)(nil)
