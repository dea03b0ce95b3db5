package query

import (
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/render"
)

// FamilyOptions carries the `family` subcommand's render-affecting flags.
type FamilyOptions struct {
	Format             string
	ReverseComplement  bool
	IncludeClassInName bool
}

// Family resolves acc (case-insensitive, version suffix ignored) to a
// single family record via the file set's accession index, and renders
// it in the given format (spec.md §4.6 "family" command).
func (e *Engine) Family(acc string, opt FamilyOptions) ([]byte, error) {
	parsed, err := family.ParseAccession(strings.ToUpper(acc))
	if err != nil {
		return nil, err
	}

	fam, err := e.fs.GetFamily(parsed.Base)
	if err != nil {
		return nil, err
	}

	ctx := render.Context{
		ReverseComplement:  opt.ReverseComplement,
		IncludeClassInName: opt.IncludeClassInName,
		Tree:               e.fs.Tree(),
	}
	if len(fam.Clades) > 0 {
		if n := e.fs.Tree().Node(fam.Clades[0]); n != nil {
			ctx.DisplayClade = n.DisplayName()
		}
	}

	format := opt.Format
	if format == "" {
		format = render.FormatSummary
	}
	return render.Render(format, fam, ctx)
}
