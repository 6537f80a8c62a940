package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// SourceLoaded reports whether a GFF file with the same fingerprint has
// already been converted into the store.
func (s *Store) SourceLoaded(fp FileFingerprint) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM sources
		WHERE path = ? AND size = ? AND modtime = ?
	`, fp.Path, fp.Size, fp.ModTime.UTC().Format(time.RFC3339Nano)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query sources: %w", err)
	}
	return count > 0, nil
}

// RecordSource stores the fingerprint of a converted GFF file together with
// the number of genes it contributed.
func (s *Store) RecordSource(fp FileFingerprint, genes int) error {
	_, err := s.db.Exec(`
		INSERT INTO sources (path, size, modtime, genes, loaded_at)
		VALUES (?, ?, ?, ?, ?)
	`, fp.Path, fp.Size, fp.ModTime.UTC().Format(time.RFC3339Nano), genes,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record source: %w", err)
	}
	return nil
}

// Clear removes all genes, transcripts, exons, overlaps and source records.
func (s *Store) Clear() error {
	for _, table := range []string{"genes", "mrnas", "exons", "overlaps", "sources"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
