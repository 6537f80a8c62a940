// Package duckdb persists validated gene models and projection results in
// DuckDB, so they can be queried with SQL after a run.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding gene models and overlaps.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS genes (
			id VARCHAR,
			seqid VARCHAR,
			start BIGINT,
			stop BIGINT,
			strand VARCHAR
		);

		CREATE TABLE IF NOT EXISTS mrnas (
			id VARCHAR,
			gene_id VARCHAR,
			tid INTEGER,
			start BIGINT,
			stop BIGINT,
			strand VARCHAR
		);

		CREATE TABLE IF NOT EXISTS exons (
			transcript_id VARCHAR,
			num INTEGER,
			id VARCHAR,
			start BIGINT,
			stop BIGINT,
			cds_id VARCHAR,
			cds_start BIGINT,
			cds_stop BIGINT,
			phase5 TINYINT,
			phase3 TINYINT
		);

		CREATE TABLE IF NOT EXISTS overlaps (
			label VARCHAR,
			transcript_id VARCHAR,
			exon_num INTEGER,
			strand VARCHAR,
			exon_start BIGINT,
			exon_stop BIGINT,
			start BIGINT,
			stop BIGINT,
			local_start BIGINT,
			local_stop BIGINT,
			coding_start BIGINT,
			coding_stop BIGINT,
			phase VARCHAR
		);

		CREATE TABLE IF NOT EXISTS sources (
			path VARCHAR,
			size BIGINT,
			modtime VARCHAR,
			genes INTEGER,
			loaded_at VARCHAR
		);

		CREATE INDEX IF NOT EXISTS idx_genes_pos ON genes(seqid, start, stop);
		CREATE INDEX IF NOT EXISTS idx_mrnas_gene ON mrnas(gene_id);
		CREATE INDEX IF NOT EXISTS idx_exons_transcript ON exons(transcript_id);
		CREATE INDEX IF NOT EXISTS idx_overlaps_transcript ON overlaps(transcript_id);
	`)
	return err
}
