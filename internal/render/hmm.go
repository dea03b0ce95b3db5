package render

import (
	"fmt"
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
)

// HMM renders spec.md §4.7's "hmm" format: the stored HMM payload with
// NAME/ACC/DESC rewritten from current metadata, a CT class line
// appended, and a TH line per per-species threshold.
func HMM(f *family.Family, ctx Context) ([]byte, error) {
	if len(f.HMM) == 0 {
		return nil, famerr.Data("family has no HMM payload").WithTerm(f.Accession)
	}
	lines := strings.Split(string(f.HMM), "\n")
	out := make([]string, 0, len(lines)+len(f.TH)+1)

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "NAME"):
			out = append(out, "NAME  "+f.DisplayName())
		case strings.HasPrefix(line, "ACC"):
			out = append(out, fmt.Sprintf("ACC   %s.%d", f.Accession, f.Version))
		case strings.HasPrefix(line, "DESC"):
			if f.Description != nil {
				out = append(out, "DESC  "+*f.Description)
			}
		case strings.HasPrefix(line, "TH"):
			// Dropped: regenerated below from f.TH, so any TH line already
			// present in the stored payload would otherwise survive
			// alongside the freshly computed ones.
		case line == "//":
			if f.RepeatMasker != nil && f.RepeatMasker.Type != "" {
				out = append(out, fmt.Sprintf("CT    %s/%s", f.RepeatMasker.Type, f.RepeatMasker.SubType))
			}
			for _, th := range f.TH {
				out = append(out, fmt.Sprintf("TH    TaxId:%d; TaxName:%s; GA:%.1f; TC:%.1f; NC:%.1f; fdr:%.3f;",
					th.TaxonID, th.TaxonName, th.GA, th.TC, th.NC, th.FDR))
			}
			out = append(out, line)
		default:
			out = append(out, line)
		}
	}
	return []byte(strings.Join(out, "\n")), nil
}

// HMMSpecies renders spec.md §4.7's "hmm_species" transform: pick the
// TH entry whose taxon is the nearest ancestor-or-self of
// ctx.SpeciesID, write its GA/TC/NC into the top-level fields, and
// drop every TH line.
func HMMSpecies(f *family.Family, ctx Context) ([]byte, error) {
	if ctx.SpeciesID == nil || ctx.Tree == nil {
		return nil, famerr.User("hmm_species requires a species id").WithTerm(f.Accession)
	}
	if len(f.HMM) == 0 {
		return nil, famerr.Data("family has no HMM payload").WithTerm(f.Accession)
	}

	byTaxon := make(map[uint32]family.Threshold, len(f.TH))
	for _, th := range f.TH {
		byTaxon[th.TaxonID] = th
	}

	chain := append([]uint32{*ctx.SpeciesID}, ctx.Tree.Ancestors(*ctx.SpeciesID)...)
	var picked *family.Threshold
	for _, id := range chain {
		if th, ok := byTaxon[id]; ok {
			t := th
			picked = &t
			break
		}
	}
	if picked == nil {
		return nil, famerr.Data("no threshold found for species %d or any ancestor", *ctx.SpeciesID).WithTerm(f.Accession)
	}

	lines := strings.Split(string(f.HMM), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "NAME"):
			out = append(out, "NAME  "+f.DisplayName())
		case strings.HasPrefix(line, "ACC"):
			out = append(out, fmt.Sprintf("ACC   %s.%d", f.Accession, f.Version))
		case strings.HasPrefix(line, "DESC"):
			if f.Description != nil {
				out = append(out, "DESC  "+*f.Description)
			}
		case strings.HasPrefix(line, "GA"):
			out = append(out, fmt.Sprintf("GA    %.1f %.1f;", picked.GA, picked.GA))
		case strings.HasPrefix(line, "TC"):
			out = append(out, fmt.Sprintf("TC    %.1f %.1f;", picked.TC, picked.TC))
		case strings.HasPrefix(line, "NC"):
			out = append(out, fmt.Sprintf("NC    %.1f %.1f;", picked.NC, picked.NC))
		case strings.HasPrefix(line, "TH"):
			// Dropped: hmm_species guarantees no TH lines remain, so any
			// TH line already present in the stored payload is stripped.
		default:
			out = append(out, line)
		}
	}
	return []byte(strings.Join(out, "\n")), nil
}
