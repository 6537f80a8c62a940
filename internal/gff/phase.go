package gff

import "strconv"

// Phase is the reading-frame offset at an exon boundary. The zero value is
// undefined: the CDS does not begin or end at that boundary.
type Phase struct {
	value   uint8
	defined bool
}

// Undefined is the phase of a boundary no frame crosses.
var Undefined = Phase{}

// Defined returns the phase n mod 3.
func Defined(n int64) Phase {
	return Phase{value: uint8(((n % 3) + 3) % 3), defined: true}
}

// Value returns the phase (0, 1 or 2) and whether it is defined.
func (p Phase) Value() (int, bool) {
	return int(p.value), p.defined
}

// IsDefined returns true if the phase has a value.
func (p Phase) IsDefined() bool {
	return p.defined
}

// String renders the phase as "0", "1", "2" or "." when undefined.
func (p Phase) String() string {
	if !p.defined {
		return "."
	}
	return strconv.Itoa(int(p.value))
}

// PhasePair holds the 5' and 3' phases of an exon.
type PhasePair struct {
	Five  Phase
	Three Phase
}

// String renders the pair as "<5'>-<3'>", e.g. "0-2" or ".-0".
func (pp PhasePair) String() string {
	return pp.Five.String() + "-" + pp.Three.String()
}

// CalculatePhases assigns 5' and 3' phases to every coding exon of the
// transcript. Exons are walked in array order; the coding-length accumulator
// advances by each CDS length whether or not a phase is defined there.
func (m *MRNA) CalculatePhases() {
	var offset int64
	for _, e := range m.Exons {
		if !e.IsCoding() {
			e.Phase = PhasePair{}
			continue
		}
		e.Phase = exonPhase(e.Bounds, e.CDS.Bounds, offset, m.Strand)
		offset += e.CodingLength()
	}
}

// CalculatePhases computes phases for every transcript of the gene.
func CalculatePhases(g *Gene) {
	for _, m := range g.MRNAs {
		m.CalculatePhases()
	}
}

// exonPhase returns the phase pair of one coding exon given the coding
// length of all preceding exons.
func exonPhase(exon, cds Bounds, offset int64, s Strand) PhasePair {
	eStart, eStop := exon.Oriented(s)
	cStart, cStop := cds.Oriented(s)
	codingLength := abs(cStop-cStart) + 1

	var pp PhasePair
	if cStart == eStart {
		pp.Five = Defined(offset)
	}
	if cStop == eStop {
		pp.Three = Defined(offset + codingLength)
	}
	return pp
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
