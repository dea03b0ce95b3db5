package query

import (
	"github.com/Dfam-consortium/famdb-go/internal/schema"
)

// PartitionInfo summarizes one declared partition for the `info`
// command, whether or not its file is installed.
type PartitionInfo struct {
	Number      int
	Installed   bool
	RootTaxonID uint32
	RootName    string
	FamilyCount int
}

// InfoResult is the aggregated cross-file metadata `info` reports.
type InfoResult struct {
	ExportName         string
	ExportDate         string
	SchemaVersionMajor int
	SchemaVersionMinor int
	Partitions         []PartitionInfo
	History            []schema.HistoryEntry // only populated with --history
}

// Info aggregates metadata across every installed file (spec.md
// §4.6): partitions present/absent, taxon names per partition root,
// per-partition family counts, and optionally the merged change
// history.
func (e *Engine) Info(withHistory bool) (InfoResult, error) {
	id := e.fs.Identity()
	res := InfoResult{
		ExportName:         id.ExportName,
		ExportDate:         id.ExportDate,
		SchemaVersionMajor: id.SchemaVersionMajor,
		SchemaVersionMinor: id.SchemaVersionMinor,
	}

	tree := e.fs.Tree()
	installed := map[int]bool{}
	for _, p := range e.fs.Partitions() {
		installed[p] = true
	}

	declared := id.FullPartitionTable
	if len(declared) == 0 {
		declared = e.fs.Partitions()
	}
	for _, p := range declared {
		pi := PartitionInfo{Number: p, Installed: installed[p]}
		if pid, ok := e.fs.PartitionIdentity(p); ok {
			pi.RootTaxonID = pid.PartitionRootTaxonID
			if n := tree.Node(pid.PartitionRootTaxonID); n != nil {
				pi.RootName = n.DisplayName()
			}
		}
		if pi.Installed {
			for _, n := range tree.AllNodes() {
				if n.Partition == p {
					pi.FamilyCount += len(n.FamilyAccessions)
				}
			}
		}
		res.Partitions = append(res.Partitions, pi)
	}

	if withHistory {
		for _, p := range e.fs.Partitions() {
			entries, err := schema.ListHistory(e.fs.Container(p))
			if err != nil {
				return res, err
			}
			res.History = append(res.History, entries...)
		}
	}

	return res, nil
}
