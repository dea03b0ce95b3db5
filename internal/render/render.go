package render

import (
	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
)

// Format names accepted by `family -f` / `families -f` (spec.md §6).
const (
	FormatSummary    = "summary"
	FormatHMM        = "hmm"
	FormatHMMSpecies = "hmm_species"
	FormatFastaName  = "fasta_name"
	FormatFastaAcc   = "fasta_acc"
	FormatEMBL       = "embl"
	FormatEMBLMeta   = "embl_meta"
	FormatEMBLSeq    = "embl_seq"
)

// Render dispatches to the emitter named by format, the single entry
// point C6 (the query engine) calls against the shared family object
// model (spec.md §4.7's "render(family, context) → byte stream").
func Render(format string, f *family.Family, ctx Context) ([]byte, error) {
	switch format {
	case FormatSummary:
		return Summary(f), nil
	case FormatHMM:
		return HMM(f, ctx)
	case FormatHMMSpecies:
		return HMMSpecies(f, ctx)
	case FormatFastaName:
		return FastaName(f, ctx)
	case FormatFastaAcc:
		return FastaAcc(f, ctx)
	case FormatEMBL:
		return EMBL(f, ctx), nil
	case FormatEMBLMeta:
		return EMBLMeta(f, ctx), nil
	case FormatEMBLSeq:
		return EMBLSeq(f), nil
	default:
		return nil, famerr.User("unknown output format").WithTerm(format)
	}
}
