package query

import (
	"io"
	"sort"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/render"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// FamiliesOptions carries the `families` subcommand's flags.
type FamiliesOptions struct {
	WithAncestors   bool
	WithDescendants bool

	Stage       *int
	ClassPrefix string
	NamePrefix  string
	Curated     bool
	Uncurated   bool

	RequireGeneralThreshold bool

	Format             string
	ReverseComplement  bool
	IncludeClassInName bool
}

// Families resolves term, expands the candidate taxon set per -a/-d,
// collects the union of owned accessions, applies the filter pipeline
// in spec.md §4.6's fixed order, and streams each rendered family to
// w in lexicographic accession order (first-seen wins on duplicates).
// Non-fatal per-family/per-partition problems are returned as warnings
// rather than aborting the stream.
func (e *Engine) Families(term string, opt FamiliesOptions, w io.Writer) ([]*famerr.Error, error) {
	id, err := e.resolveUnambiguous(term)
	if err != nil {
		return nil, err
	}
	tree := e.fs.Tree()

	ids := []uint32{id}
	if opt.WithAncestors {
		ids = append(ids, tree.Ancestors(id)...)
	}
	if opt.WithDescendants {
		ids = append(ids, tree.Descendants(id)...)
	}

	accs, warnings := e.fs.FamiliesForTaxa(ids)
	sort.Strings(accs)

	filters := taxonomy.CountFilters{
		Curated:     opt.Curated,
		Uncurated:   opt.Uncurated,
		Stage:       opt.Stage,
		ClassPrefix: opt.ClassPrefix,
		NamePrefix:  opt.NamePrefix,
	}

	displayName := ""
	if n := tree.Node(id); n != nil {
		displayName = n.DisplayName()
	}
	ctx := render.Context{
		DisplayClade:       displayName,
		ReverseComplement:  opt.ReverseComplement,
		IncludeClassInName: opt.IncludeClassInName,
		Tree:               tree,
	}

	format := opt.Format
	if format == "" {
		format = render.FormatSummary
	}

	for _, acc := range accs {
		fam, err := e.fs.GetFamily(acc)
		if err != nil {
			warn := famerr.Data("could not decode family: %s", err).WithTerm(acc)
			warn.Kind = famerr.KindWarning
			warnings = append(warnings, warn)
			continue
		}
		if !matchesFamilyFilters(fam, filters, opt.RequireGeneralThreshold) {
			continue
		}

		out, err := render.Render(format, fam, ctx)
		if err != nil {
			return warnings, err
		}
		if _, err := w.Write(out); err != nil {
			return warnings, famerr.IO(err, "write family %s", acc)
		}
	}

	return warnings, nil
}

// matchesFamilyFilters applies CountFilters plus the
// --require-general-threshold predicate, the last stage of spec.md
// §4.6's filter pipeline.
func matchesFamilyFilters(fam *family.Family, filters taxonomy.CountFilters, requireGeneralThreshold bool) bool {
	if !filters.Matches(fam) {
		return false
	}
	if requireGeneralThreshold && !fam.HasGeneralThreshold() {
		return false
	}
	return true
}
