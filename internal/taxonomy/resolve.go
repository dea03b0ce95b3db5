package taxonomy

import (
	"sort"
	"strconv"
	"strings"
)

// Resolution is the result of resolving one term against the tree,
// per spec.md §4.4's {exact: [id], partial: [id]} shape.
type Resolution struct {
	Exact   []uint32
	Partial []uint32
}

// Unambiguous applies spec.md §4.4's tie-break rule: if exact has one
// match, use it; else if exact is empty and partial has exactly one
// match, use it; otherwise the resolution is ambiguous (or empty).
func (r Resolution) Unambiguous() (uint32, bool) {
	if len(r.Exact) == 1 {
		return r.Exact[0], true
	}
	if len(r.Exact) == 0 && len(r.Partial) == 1 {
		return r.Partial[0], true
	}
	return 0, false
}

// Empty reports whether resolution found nothing at all, the
// condition that triggers the suggestion heuristic.
func (r Resolution) Empty() bool {
	return len(r.Exact) == 0 && len(r.Partial) == 0
}

// Candidates returns exact ∪ partial, sorted and deduplicated, for
// ambiguity reporting.
func (r Resolution) Candidates() []uint32 {
	seen := map[uint32]bool{}
	var out []uint32
	for _, id := range append(append([]uint32{}, r.Exact...), r.Partial...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve matches term against taxon ids and names (spec.md §4.4): a
// purely numeric term matches by id; otherwise term is normalized and
// compared against every name variant, exact on equality and partial
// on substring containment. Multi-word terms are expected pre-joined
// by the caller with a single space, matching the CLI's
// multi-argument-term convention.
func (t *Tree) Resolve(term string) Resolution {
	if id, err := strconv.ParseUint(term, 10, 32); err == nil {
		if n := t.nodes[uint32(id)]; n != nil {
			return Resolution{Exact: []uint32{uint32(id)}}
		}
		return Resolution{}
	}

	norm := Normalize(term)
	if norm == "" {
		return Resolution{}
	}

	var exact, partial []uint32
	exactSeen := map[uint32]bool{}
	partialSeen := map[uint32]bool{}

	if ids, ok := t.nameIndex[norm]; ok {
		for _, id := range ids {
			if !exactSeen[id] {
				exactSeen[id] = true
				exact = append(exact, id)
			}
		}
	}

	for key, ids := range t.nameIndex {
		if key == norm {
			continue
		}
		if !strings.Contains(key, norm) {
			continue
		}
		for _, id := range ids {
			if exactSeen[id] || partialSeen[id] {
				continue
			}
			partialSeen[id] = true
			partial = append(partial, id)
		}
	}

	sort.Slice(exact, func(i, j int) bool { return exact[i] < exact[j] })
	sort.Slice(partial, func(i, j int) bool { return partial[i] < partial[j] })
	return Resolution{Exact: exact, Partial: partial}
}
