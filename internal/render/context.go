// Package render implements the format emitters (spec.md §4.7): one
// shared family object model rendered into summary, FASTA, HMM and
// EMBL byte streams. Every emitter is pure and deterministic — no
// timestamps, no nondeterministic ordering — so repeated runs over the
// same inputs produce byte-identical output (spec.md §5).
package render

import "github.com/Dfam-consortium/famdb-go/internal/taxonomy"

// Context carries the per-query parameters that shape a render call
// but aren't part of the family record itself (spec.md §4.7).
type Context struct {
	// DisplayClade is the queried taxon's display name, not the
	// family's own clade — "@Clade" in FASTA headers reflects what was
	// searched for, not where the family was curated.
	DisplayClade string

	ReverseComplement   bool
	IncludeClassInName  bool

	// SpeciesID selects the nearest per-species threshold for
	// hmm_species; with nil, hmm_species returns a user error.
	SpeciesID *uint32

	Tree *taxonomy.Tree
}
