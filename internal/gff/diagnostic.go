package gff

import "fmt"

// Rule names a structural check performed while building gene models.
type Rule string

const (
	RuleMissingID   Rule = "missing_id"
	RuleStrand      Rule = "strand_mismatch"
	RuleSeqID       Rule = "seqid_mismatch"
	RuleOutsideGene Rule = "outside_gene"
	RuleNoParent    Rule = "no_parent"
	RuleMRNABounds  Rule = "mrna_bounds"
	RuleExonBounds  Rule = "exon_bounds"
	RuleExonOverlap Rule = "exon_overlap"
	RuleExonOrder   Rule = "exon_order"
	RuleCDSBounds   Rule = "cds_bounds"
)

// Diagnostic describes one violated rule. Line holds the offending raw input
// line when one is available.
type Diagnostic struct {
	Rule    Rule
	Message string
	Line    string
}

// String renders the diagnostic in the form
// "GFF format error, skipping offending gene - <message>[:\n<line>]".
func (d Diagnostic) String() string {
	s := "GFF format error, skipping offending gene - " + d.Message
	if d.Line != "" {
		s += ":\n" + d.Line
	}
	return s
}

// DiagnosticHandler receives diagnostics as they are produced.
type DiagnosticHandler func(Diagnostic)

func missingIDDiagnostic(rec Record, line string) Diagnostic {
	return Diagnostic{
		Rule:    RuleMissingID,
		Message: fmt.Sprintf("%s lacks identifier (ID=([^;]+))", rec.Type),
		Line:    line,
	}
}

func strandDiagnostic(line string) Diagnostic {
	return Diagnostic{
		Rule:    RuleStrand,
		Message: "All gene elements must be on same strand",
		Line:    line,
	}
}

func seqIDDiagnostic(rec Record, line string) Diagnostic {
	return Diagnostic{
		Rule:    RuleSeqID,
		Message: fmt.Sprintf("%s is not from same sequence as expected parent", rec.Type),
		Line:    line,
	}
}

func outsideGeneDiagnostic(rec Record, line string) Diagnostic {
	return Diagnostic{
		Rule: RuleOutsideGene,
		Message: fmt.Sprintf("%s (%s at (%d, %d)) found outside of gene context",
			rec.Type, rec.SeqID, rec.Bounds.Start, rec.Bounds.Stop),
		Line: line,
	}
}

func noParentDiagnostic(rec Record, parent, line string) Diagnostic {
	id, _ := rec.ID()
	return Diagnostic{
		Rule:    RuleNoParent,
		Message: fmt.Sprintf("%s '%s' has no parent %s", rec.Type, id, parent),
		Line:    line,
	}
}

func mrnaBoundsDiagnostic(m *MRNA, g *Gene, line string) Diagnostic {
	return Diagnostic{
		Rule: RuleMRNABounds,
		Message: fmt.Sprintf("mRNA '%s' at (%d, %d) must be within gene bounds (%d, %d)",
			m.ID, m.Bounds.Start, m.Bounds.Stop, g.Bounds.Start, g.Bounds.Stop),
		Line: line,
	}
}

func exonBoundsDiagnostic(e *Exon, m *MRNA, line string) Diagnostic {
	return Diagnostic{
		Rule: RuleExonBounds,
		Message: fmt.Sprintf("Exon '%s' at (%d, %d) must be within parent mRNA bounds (%d, %d)",
			e.ID, e.Bounds.Start, e.Bounds.Stop, m.Bounds.Start, m.Bounds.Stop),
		Line: line,
	}
}

func exonOverlapDiagnostic(e, prev *Exon, line string) Diagnostic {
	return Diagnostic{
		Rule:    RuleExonOverlap,
		Message: fmt.Sprintf("Exons '%s' and '%s' overlap", e.ID, prev.ID),
		Line:    line,
	}
}

func exonOrderDiagnostic(e, prev *Exon, line string) Diagnostic {
	return Diagnostic{
		Rule:    RuleExonOrder,
		Message: fmt.Sprintf("Exons '%s' and '%s' are out of order", e.ID, prev.ID),
		Line:    line,
	}
}

func cdsBoundsDiagnostic(c *CDS, e *Exon, line string) Diagnostic {
	return Diagnostic{
		Rule: RuleCDSBounds,
		Message: fmt.Sprintf("CDS %s at (%d, %d) must be within exon %s at (%d, %d)",
			c.ID, c.Bounds.Start, c.Bounds.Stop, e.ID, e.Bounds.Start, e.Bounds.Stop),
		Line: line,
	}
}
