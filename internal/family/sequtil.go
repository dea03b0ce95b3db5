// Sequence helpers built on the teacher's own sequence package rather
// than hand-rolled string surgery: shenwei356/bio/seq already gives
// the revcomp transform and fixed-width FASTA wrapping every emitter
// in internal/render needs (spec.md §4.7's "wrapped at 60 columns").
package family

import (
	"strings"

	"github.com/shenwei356/bio/seq"
)

// NormalizeSequence upper-cases a consensus string for storage,
// per spec.md §4.3 ("Sequence strings are case-insensitive on write
// and stored upper-case").
func NormalizeSequence(s string) string {
	return strings.ToUpper(s)
}

// WrapSequence wraps s at the given column width, matching the
// teacher's `record.Seq.FormatSeq(60)` idiom.
func WrapSequence(s string, width int) (string, error) {
	sq, err := seq.NewSeq(seq.DNAredundant, []byte(s))
	if err != nil {
		return "", err
	}
	return string(sq.FormatSeq(width)), nil
}

// ReverseComplement returns the reverse complement of s, matching the
// teacher's `record.Seq.RevComInplace()` idiom used by fasta/locate
// commands.
func ReverseComplement(s string) (string, error) {
	sq, err := seq.NewSeq(seq.DNAredundant, []byte(s))
	if err != nil {
		return "", err
	}
	return string(sq.RevComInplace().Seq), nil
}
