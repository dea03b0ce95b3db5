package taxonomy

import (
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/container"
	"github.com/Dfam-consortium/famdb-go/internal/family"
)

// CountFilters narrows CountFamilies per spec.md §4.4's count_families
// signature. A zero value (all fields unset) counts every family.
type CountFilters struct {
	Curated   bool
	Uncurated bool
	Stage     *int
	ClassPrefix string
	NamePrefix  string
}

// Matches reports whether fam satisfies every set filter field.
func (f CountFilters) Matches(fam *family.Family) bool {
	if f.Curated && !fam.Curated() {
		return false
	}
	if f.Uncurated && fam.Curated() {
		return false
	}
	if f.NamePrefix != "" {
		name := fam.DisplayName()
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(f.NamePrefix)) {
			return false
		}
	}
	if f.ClassPrefix != "" && !classPrefixMatches(fam.Classification, f.ClassPrefix) {
		return false
	}
	if f.Stage != nil {
		if !containsInt(fam.SearchStages(), *f.Stage) {
			return false
		}
	}
	return true
}

// classPrefixMatches matches a classification path component-by-
// component (spec.md §4.6: "LTR matches …;LTR/ERVL but not xLTR").
func classPrefixMatches(classification, prefix string) bool {
	parts := strings.Split(classification, ";")
	for _, p := range parts {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// CountFamilies returns the number of families owned by taxon id that
// satisfy filters, read from the partition container c that owns this
// node's families (spec.md §4.4: "integer count for this node in its
// owning partition"). Ancestral/lineage totals are composed by the
// caller (the query engine), not here.
func (t *Tree) CountFamilies(c *container.Container, id uint32, filters CountFilters) (int, error) {
	n := t.nodes[id]
	if n == nil {
		return 0, nil
	}
	count := 0
	for _, acc := range n.FamilyAccessions {
		fam, err := family.Decode(c, acc)
		if err != nil {
			return 0, err
		}
		if filters.Matches(fam) {
			count++
		}
	}
	return count, nil
}
