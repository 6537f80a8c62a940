package duckdb

import (
	"database/sql"
	"fmt"

	"github.com/pedpha/pedpha/internal/gff"
)

// InsertGene inserts a gene model with its transcripts, exons and CDS
// segments. Exon phases are stored as they are on the model.
func (s *Store) InsertGene(g *gff.Gene) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert gene: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO genes (id, seqid, start, stop, strand)
		VALUES (?, ?, ?, ?, ?)
	`, g.ID, g.SeqID, g.Bounds.Start, g.Bounds.Stop, string(g.Strand)); err != nil {
		return fmt.Errorf("insert gene: %w", err)
	}

	for _, m := range g.MRNAs {
		if _, err := tx.Exec(`
			INSERT INTO mrnas (id, gene_id, tid, start, stop, strand)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.ID, g.ID, m.Tid, m.Bounds.Start, m.Bounds.Stop, string(m.Strand)); err != nil {
			return fmt.Errorf("insert mrna: %w", err)
		}

		for _, e := range m.Exons {
			var cdsID, cdsStart, cdsStop interface{}
			if e.CDS != nil {
				cdsID, cdsStart, cdsStop = e.CDS.ID, e.CDS.Bounds.Start, e.CDS.Bounds.Stop
			}
			if _, err := tx.Exec(`
				INSERT INTO exons (transcript_id, num, id, start, stop,
				                   cds_id, cds_start, cds_stop, phase5, phase3)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, m.ID, e.Num, e.ID, e.Bounds.Start, e.Bounds.Stop,
				cdsID, cdsStart, cdsStop,
				nullPhase(e.Phase.Five), nullPhase(e.Phase.Three)); err != nil {
				return fmt.Errorf("insert exon: %w", err)
			}
		}
	}

	return tx.Commit()
}

// GetGene returns a gene model by ID, or nil if not found.
func (s *Store) GetGene(id string) (*gff.Gene, error) {
	row := s.db.QueryRow(`
		SELECT id, seqid, start, stop, strand
		FROM genes
		WHERE id = ?
	`, id)

	g := &gff.Gene{}
	var strand string
	err := row.Scan(&g.ID, &g.SeqID, &g.Bounds.Start, &g.Bounds.Stop, &strand)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan gene: %w", err)
	}
	g.Strand = gff.Strand(strand)

	if err := s.loadMRNAs(g); err != nil {
		return nil, err
	}
	return g, nil
}

// GeneCount returns the number of stored genes.
func (s *Store) GeneCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM genes").Scan(&count)
	return count, err
}

// loadMRNAs loads the transcripts of a gene in ordinal order.
func (s *Store) loadMRNAs(g *gff.Gene) error {
	rows, err := s.db.Query(`
		SELECT id, tid, start, stop, strand
		FROM mrnas
		WHERE gene_id = ?
		ORDER BY tid
	`, g.ID)
	if err != nil {
		return fmt.Errorf("query mrnas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m := &gff.MRNA{}
		var strand string
		if err := rows.Scan(&m.ID, &m.Tid, &m.Bounds.Start, &m.Bounds.Stop, &strand); err != nil {
			return fmt.Errorf("scan mrna: %w", err)
		}
		m.Strand = gff.Strand(strand)
		g.MRNAs = append(g.MRNAs, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range g.MRNAs {
		if err := s.loadExons(m); err != nil {
			return err
		}
	}
	return nil
}

// loadExons loads exons for a transcript.
func (s *Store) loadExons(m *gff.MRNA) error {
	rows, err := s.db.Query(`
		SELECT num, id, start, stop, cds_id, cds_start, cds_stop, phase5, phase3
		FROM exons
		WHERE transcript_id = ?
		ORDER BY num
	`, m.ID)
	if err != nil {
		return fmt.Errorf("query exons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e := &gff.Exon{}
		var cdsID sql.NullString
		var cdsStart, cdsStop, phase5, phase3 sql.NullInt64
		err := rows.Scan(&e.Num, &e.ID, &e.Bounds.Start, &e.Bounds.Stop,
			&cdsID, &cdsStart, &cdsStop, &phase5, &phase3)
		if err != nil {
			return fmt.Errorf("scan exon: %w", err)
		}
		if cdsID.Valid {
			e.CDS = &gff.CDS{
				ID:     cdsID.String,
				Bounds: gff.Bounds{Start: cdsStart.Int64, Stop: cdsStop.Int64},
			}
		}
		e.Phase = gff.PhasePair{Five: scanPhase(phase5), Three: scanPhase(phase3)}
		m.Exons = append(m.Exons, e)
	}
	return rows.Err()
}

// nullPhase returns nil for an undefined phase, otherwise its value.
func nullPhase(p gff.Phase) interface{} {
	v, ok := p.Value()
	if !ok {
		return nil
	}
	return v
}

func scanPhase(n sql.NullInt64) gff.Phase {
	if !n.Valid {
		return gff.Undefined
	}
	return gff.Defined(n.Int64)
}
