package query

import "github.com/Dfam-consortium/famdb-go/internal/taxonomy"

// NameEntry is one node's id and full name list, the shape the
// `names -f json` format serializes as {id, names:[{kind,text}]}.
type NameEntry struct {
	ID    uint32
	Names []taxonomy.Name
}

// NamesResult is the outcome of `names`: exact and non-exact blocks,
// per spec.md §4.6 ("prints exact and non-exact blocks").
type NamesResult struct {
	Exact       []NameEntry
	NonExact    []NameEntry
	Suggestions []taxonomy.Suggestion // only populated when both blocks are empty
}

// Names resolves term and returns both the exact and partial blocks;
// unlike Lineage/Families, ambiguity is not an error here — spec.md
// §4.4: "names returns both lists."
func (e *Engine) Names(term string) NamesResult {
	tree := e.fs.Tree()
	r := tree.Resolve(term)

	toEntries := func(ids []uint32) []NameEntry {
		out := make([]NameEntry, 0, len(ids))
		for _, id := range ids {
			if n := tree.Node(id); n != nil {
				out = append(out, NameEntry{ID: id, Names: n.Names})
			}
		}
		return out
	}

	res := NamesResult{Exact: toEntries(r.Exact), NonExact: toEntries(r.Partial)}
	if r.Empty() {
		res.Suggestions = tree.Suggest(term)
	}
	return res
}
