package render

import (
	"fmt"
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/family"
)

const emblWrapWidth = 75

// wrapTagged wraps text to width columns, re-emitting the given
// two-letter EMBL tag at the start of each wrapped line.
func wrapTagged(tag, text string, width int) string {
	words := strings.Fields(text)
	var lines []string
	var cur strings.Builder
	for _, w := range words {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%-2s   %s\n", tag, l)
	}
	return b.String()
}

// emblHeader writes the ID/NM/AC/DE lines common to all three EMBL
// variants.
func emblHeader(f *family.Family) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID   %s; SV %d; linear; unassigned DNA; STD; UNC; %d BP.\n", f.Accession, f.Version, f.Length)
	fmt.Fprintf(&b, "NM   %s\n", f.DisplayName())
	fmt.Fprintf(&b, "AC   %s;\n", f.Accession)
	if f.Description != nil {
		b.WriteString(wrapTagged("DE", *f.Description, emblWrapWidth))
	}
	return b.String()
}

// emblMetaBody writes the DR/KW/OS/OC/RN/CC blocks (everything except
// ID/NM/AC/DE and the sequence).
func emblMetaBody(f *family.Family, ctx Context) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DR   Dfam; %s.\n", f.Accession)
	b.WriteString("KW   Transposable Element; Repeat Family.\n")

	species := ctx.DisplayClade
	if species == "" {
		species = "Unknown"
	}
	fmt.Fprintf(&b, "OS   %s\n", species)
	if ctx.Tree != nil && len(f.Clades) > 0 && ctx.Tree.Node(f.Clades[0]) != nil {
		var path []string
		for _, anc := range append([]uint32{f.Clades[0]}, ctx.Tree.Ancestors(f.Clades[0])...) {
			if an := ctx.Tree.Node(anc); an != nil && an.DisplayName() != "" {
				path = append([]string{an.DisplayName()}, path...)
			}
		}
		b.WriteString(wrapTagged("OC", strings.Join(path, "; ")+".", emblWrapWidth))
	}

	for i, c := range f.Citations {
		fmt.Fprintf(&b, "RN   [%d]\n", i+1)
		fmt.Fprintf(&b, "RA   %s;\n", c.Author)
		fmt.Fprintf(&b, "RT   \"%s\";\n", c.Title)
		fmt.Fprintf(&b, "RL   %s, %d.\n", c.Journal, c.Year)
	}

	b.WriteString("CC   " + "-" + "\n")
	if f.Classification != "" {
		fmt.Fprintf(&b, "CC   Classification: %s\n", f.Classification)
	}
	if f.Description != nil {
		b.WriteString(wrapTagged("CC", *f.Description, emblWrapWidth))
	}
	if f.RepeatMasker != nil {
		fmt.Fprintf(&b, "CC   RepeatMasker Annotations:\n")
		fmt.Fprintf(&b, "CC        Type: %s\n", f.RepeatMasker.Type)
		fmt.Fprintf(&b, "CC        SubType: %s\n", f.RepeatMasker.SubType)
		if len(f.RepeatMasker.SearchStages) > 0 {
			parts := make([]string, len(f.RepeatMasker.SearchStages))
			for i, s := range f.RepeatMasker.SearchStages {
				parts[i] = fmt.Sprint(s)
			}
			fmt.Fprintf(&b, "CC        SearchStages: %s\n", strings.Join(parts, ","))
		}
	}
	return b.String()
}

// emblSequenceBlock renders the sequence in 60-nt lines grouped in
// 10s with a trailing position counter, the classic EMBL sequence
// format.
func emblSequenceBlock(seq string) string {
	seq = strings.ToLower(seq)
	var b strings.Builder
	fmt.Fprintf(&b, "SQ   Sequence %d BP;\n", len(seq))
	for pos := 0; pos < len(seq); pos += 60 {
		end := pos + 60
		if end > len(seq) {
			end = len(seq)
		}
		line := seq[pos:end]
		var groups []string
		for i := 0; i < len(line); i += 10 {
			j := i + 10
			if j > len(line) {
				j = len(line)
			}
			groups = append(groups, line[i:j])
		}
		fmt.Fprintf(&b, "     %s %d\n", strings.Join(groups, " "), end)
	}
	b.WriteString("//\n")
	return b.String()
}

// EMBL renders the full record: header, metadata body and sequence.
func EMBL(f *family.Family, ctx Context) []byte {
	var b strings.Builder
	b.WriteString(emblHeader(f))
	b.WriteString(emblMetaBody(f, ctx))
	if f.Consensus != nil {
		b.WriteString(emblSequenceBlock(*f.Consensus))
	} else {
		b.WriteString("//\n")
	}
	return []byte(b.String())
}

// EMBLMeta renders the header and metadata body, omitting the
// sequence.
func EMBLMeta(f *family.Family, ctx Context) []byte {
	var b strings.Builder
	b.WriteString(emblHeader(f))
	b.WriteString(emblMetaBody(f, ctx))
	b.WriteString("//\n")
	return []byte(b.String())
}

// EMBLSeq renders only ID and the sequence, omitting all other
// metadata.
func EMBLSeq(f *family.Family) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "ID   %s; SV %d; linear; unassigned DNA; STD; UNC; %d BP.\n", f.Accession, f.Version, f.Length)
	if f.Consensus != nil {
		b.WriteString(emblSequenceBlock(*f.Consensus))
	} else {
		b.WriteString("//\n")
	}
	return []byte(b.String())
}
