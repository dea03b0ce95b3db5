// Package query implements the query engine (spec.md §4.6): term
// resolution, lineage walks, the filter pipeline, cross-file
// collation and the suggestion trigger, composed on top of
// internal/fileset and internal/taxonomy and rendered via
// internal/render.
package query

import (
	"fmt"
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/fileset"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// Engine runs queries against one open file set.
type Engine struct {
	fs *fileset.FileSet
}

// New wraps an opened file set in a query Engine.
func New(fs *fileset.FileSet) *Engine { return &Engine{fs: fs} }

// resolveUnambiguous implements spec.md §4.4's tie-break rule and the
// suggestion trigger, used by the `lineage` and `families` commands
// which "require an unambiguous resolution".
func (e *Engine) resolveUnambiguous(term string) (uint32, error) {
	r := e.fs.Tree().Resolve(term)
	if id, ok := r.Unambiguous(); ok {
		return id, nil
	}
	if r.Empty() {
		sugg := e.fs.Tree().Suggest(term)
		return 0, famerr.User("no taxon matches term").WithTerm(term).WithHint(formatSuggestions(sugg))
	}
	return 0, famerr.User("ambiguous term").WithTerm(term).WithHint(formatCandidateList(e.fs.Tree(), r.Candidates()))
}

func formatSuggestions(sugg []taxonomy.Suggestion) string {
	if len(sugg) == 0 {
		return "no similar names found"
	}
	names := make([]string, len(sugg))
	for i, s := range sugg {
		names[i] = fmt.Sprintf("%s (%d)", s.Name, s.ID)
	}
	return "did you mean: " + strings.Join(names, ", ")
}

func formatCandidateList(t *taxonomy.Tree, ids []uint32) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = fmt.Sprintf("%d %s", id, t.Node(id).DisplayName())
	}
	return "candidates: " + strings.Join(names, "; ")
}
