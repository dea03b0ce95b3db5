package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
)

func stagesSuffix(f *family.Family) string {
	if f.RepeatMasker == nil || len(f.RepeatMasker.SearchStages) == 0 {
		return ""
	}
	parts := make([]string, len(f.RepeatMasker.SearchStages))
	for i, s := range f.RepeatMasker.SearchStages {
		parts[i] = strconv.Itoa(s)
	}
	return " [S:" + strings.Join(parts, ",") + "]"
}

func classTag(f *family.Family) string {
	if f.RepeatMasker == nil || f.RepeatMasker.Type == "" {
		return ""
	}
	return "#" + f.RepeatMasker.Type + "/" + f.RepeatMasker.SubType
}

func fastaRecord(header, seq string) []byte {
	wrapped, err := family.WrapSequence(seq, 60)
	if err != nil {
		wrapped = seq
	}
	var b strings.Builder
	b.WriteString(">")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(wrapped)
	if !strings.HasSuffix(wrapped, "\n") {
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// FastaName renders spec.md §4.7's "fasta_name" format:
// ">NAME @Clade [S:stages]" (or "...#Type/SubType @Clade..." with
// class-in-name), consensus wrapped at 60 columns. With
// ReverseComplement set, a second record with "_RC" on the identifier
// follows.
func FastaName(f *family.Family, ctx Context) ([]byte, error) {
	if f.Consensus == nil {
		return nil, famerr.Data("family has no consensus sequence").WithTerm(f.Accession)
	}
	name := f.DisplayName()
	if name == "" {
		name = f.Accession
	}

	var header strings.Builder
	header.WriteString(name)
	if ctx.IncludeClassInName {
		header.WriteString(classTag(f))
	}
	header.WriteString(" @" + ctx.DisplayClade)
	header.WriteString(stagesSuffix(f))

	out := fastaRecord(header.String(), *f.Consensus)
	if ctx.ReverseComplement {
		rc, err := family.ReverseComplement(*f.Consensus)
		if err != nil {
			return nil, err
		}
		out = append(out, fastaRecord(name+"_RC"+rcSuffixTail(header.String(), name), rc)...)
	}
	return out, nil
}

// rcSuffixTail returns everything in header after the identifier, so
// the "_RC" record keeps the same class tag/clade/stage suffix.
func rcSuffixTail(header, name string) string {
	return strings.TrimPrefix(header, name)
}

// FastaAcc renders spec.md §4.7's "fasta_acc" format:
// ">ACC.VER name=NAME @Clade [S:stages]" (or "...#Type/SubType
// name=NAME..." with class-in-name).
func FastaAcc(f *family.Family, ctx Context) ([]byte, error) {
	if f.Consensus == nil {
		return nil, famerr.Data("family has no consensus sequence").WithTerm(f.Accession)
	}
	name := f.DisplayName()
	id := fmt.Sprintf("%s.%d", f.Accession, f.Version)

	var header strings.Builder
	header.WriteString(id)
	if ctx.IncludeClassInName {
		header.WriteString(classTag(f))
	}
	header.WriteString(" name=" + name)
	header.WriteString(" @" + ctx.DisplayClade)
	header.WriteString(stagesSuffix(f))

	out := fastaRecord(header.String(), *f.Consensus)
	if ctx.ReverseComplement {
		rc, err := family.ReverseComplement(*f.Consensus)
		if err != nil {
			return nil, err
		}
		out = append(out, fastaRecord(id+"_RC"+rcSuffixTail(header.String(), id), rc)...)
	}
	return out, nil
}
