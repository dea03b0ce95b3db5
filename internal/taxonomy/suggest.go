package taxonomy

import "sort"

// Suggestion is one candidate returned by Suggest.
type Suggestion struct {
	ID       uint32
	Name     string
	Distance int
}

// Suggest returns up to 10 taxa having any normalized name variant
// within Levenshtein distance ceil(len(norm)/4) of term, per spec.md
// §4.4/§4.6's suggestion heuristic (only meaningful to call when
// Resolve(term) is empty). Ties are broken by distance, then name
// length, then lexicographically, then ascending id.
func (t *Tree) Suggest(term string) []Suggestion {
	norm := Normalize(term)
	if norm == "" {
		return nil
	}
	threshold := (len(norm) + 3) / 4

	type cand struct {
		id   uint32
		name string
		dist int
	}
	var all []cand
	seen := map[uint32]bool{}

	for key, ids := range t.nameIndex {
		d := levenshtein(norm, key)
		if d > threshold {
			continue
		}
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			all = append(all, cand{id: id, name: key, dist: d})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		if len(a.name) != len(b.name) {
			return len(a.name) < len(b.name)
		}
		if a.name != b.name {
			return a.name < b.name
		}
		return a.id < b.id
	})

	if len(all) > 10 {
		all = all[:10]
	}
	out := make([]Suggestion, len(all))
	for i, c := range all {
		out[i] = Suggestion{ID: c.id, Name: c.name, Distance: c.dist}
	}
	return out
}

// levenshtein computes classic edit distance with a single row of
// working memory; no pack dependency ships this (DESIGN.md), so it is
// hand-rolled stdlib.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}
