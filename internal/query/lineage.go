package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

// Lineage format names (spec.md §6).
const (
	LineageFormatPretty    = "pretty"
	LineageFormatSemicolon = "semicolon"
	LineageFormatTotals    = "totals"
)

// LineageOptions carries the `lineage` subcommand's flags.
type LineageOptions struct {
	WithAncestors   bool
	WithDescendants bool
	IncludeEmpty    bool // -k
	Curated         bool
	Uncurated       bool
	Format          string
}

// Lineage resolves term to a single taxon, builds its lineage tree
// per the given flags, and renders it in one of {pretty, semicolon,
// totals} (spec.md §4.6).
func (e *Engine) Lineage(term string, opt LineageOptions) (string, error) {
	id, err := e.resolveUnambiguous(term)
	if err != nil {
		return "", err
	}
	tree := e.fs.Tree()

	withAncestors := opt.WithAncestors
	complete := opt.IncludeEmpty
	if opt.Format == LineageFormatSemicolon {
		withAncestors = true
		complete = true
	}

	root := tree.BuildLineage(id, withAncestors, opt.WithDescendants, complete)

	switch opt.Format {
	case LineageFormatSemicolon:
		return e.renderSemicolon(root), nil
	case LineageFormatTotals:
		return e.renderTotals(id, opt), nil
	default:
		return e.renderPretty(root, opt), nil
	}
}

func (e *Engine) countFiltered(id uint32, opt LineageOptions) int {
	n := e.fs.Tree().Node(id)
	if n == nil {
		return 0
	}
	c := e.fs.Container(n.Partition)
	if c == nil {
		return 0
	}
	count, err := e.fs.Tree().CountFamilies(c, id, taxonomy.CountFilters{Curated: opt.Curated, Uncurated: opt.Uncurated})
	if err != nil {
		return 0
	}
	return count
}

// renderPretty implements spec.md §4.6's box-drawing tree: two-space
// indent per depth, "└─"/"├─"/"│" connectors, each line
// "<id> <display_name>(<partition>) [<count>]".
func (e *Engine) renderPretty(root *taxonomy.LineageNode, opt LineageOptions) string {
	var b strings.Builder
	var walk func(n *taxonomy.LineageNode, prefix string, isLast bool, isRoot bool)
	walk = func(n *taxonomy.LineageNode, prefix string, isLast bool, isRoot bool) {
		node := e.fs.Tree().Node(n.ID)
		line := fmt.Sprintf("%d %s(%d) [%d]", n.ID, node.DisplayName(), node.Partition, e.countFiltered(n.ID, opt))
		if isRoot {
			b.WriteString(line + "\n")
		} else {
			connector := "├─ "
			if isLast {
				connector = "└─ "
			}
			b.WriteString(prefix + connector + line + "\n")
		}
		childPrefix := prefix
		if !isRoot {
			if isLast {
				childPrefix += "  "
			} else {
				childPrefix += "│ "
			}
		}
		for i, c := range n.Children {
			walk(c, childPrefix, i == len(n.Children)-1, false)
		}
	}
	if root != nil {
		walk(root, "", true, true)
	}
	return b.String()
}

// renderSemicolon implements spec.md §4.6: one full root-to-leaf path
// per leaf node, display names joined by ";".
func (e *Engine) renderSemicolon(root *taxonomy.LineageNode) string {
	if root == nil {
		return ""
	}
	tree := e.fs.Tree()
	var b strings.Builder
	for _, leaf := range taxonomy.Leaves(root) {
		path := taxonomy.Path(root, leaf)
		names := make([]string, len(path))
		for i, id := range path {
			names[i] = tree.Node(id).DisplayName()
		}
		b.WriteString(strings.Join(names, ";"))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTotals implements spec.md §4.6's
// "<A> entries in ancestors; <B> lineage-specific entries; found in
// partitions: <list>;" summary line.
func (e *Engine) renderTotals(id uint32, opt LineageOptions) string {
	tree := e.fs.Tree()

	ancestral := 0
	for _, a := range tree.Ancestors(id) {
		ancestral += e.countFiltered(a, opt)
	}

	lineageSpecific := e.countFiltered(id, opt)
	partitions := map[int]bool{}
	if n := tree.Node(id); n != nil && len(n.FamilyAccessions) > 0 {
		partitions[n.Partition] = true
	}
	for _, d := range tree.Descendants(id) {
		c := e.countFiltered(d, opt)
		lineageSpecific += c
		if c > 0 {
			if n := tree.Node(d); n != nil {
				partitions[n.Partition] = true
			}
		}
	}

	parts := make([]int, 0, len(partitions))
	for p := range partitions {
		parts = append(parts, p)
	}
	sort.Ints(parts)
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprintf("%d", p)
	}

	return fmt.Sprintf("%d entries in ancestors; %d lineage-specific entries; found in partitions: %s;",
		ancestral, lineageSpecific, strings.Join(strs, ","))
}
