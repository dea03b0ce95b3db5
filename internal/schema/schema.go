// Package schema defines the FamDB on-disk layout constants (the
// group/dataset tree from spec.md §4.2) and the file-identity and
// change-history lifecycle built on top of internal/container.
package schema

import "fmt"

// SchemaVersionMajor/Minor is the FamDB schema version, stored as a
// top-level container attribute and checked on open. This is
// distinct from container.FormatMajor/Minor, which versions the
// underlying binary container format itself.
const (
	SchemaVersionMajor = 1
	SchemaVersionMinor = 0
)

// Top-level attribute paths (file identity, spec.md §3 "File identity").
const (
	AttrExportName           = "/export_name"
	AttrExportDate            = "/export_date"
	AttrSchemaVersionMajor    = "/schema_version_major"
	AttrSchemaVersionMinor    = "/schema_version_minor"
	AttrPartitionNumber       = "/partition_number"
	AttrPartitionRootTaxonID  = "/partition_root_taxon_id"
	AttrFullPartitionTable    = "/full_partition_table"
	AttrCreatorFingerprint    = "/creator_fingerprint"
)

// Group roots, per spec.md §4.2's layout tree.
const (
	GroupFamilies   = "/Families"
	GroupLookup     = "/Lookup"
	GroupByName     = "/Lookup/ByName"
	GroupByStage    = "/Lookup/ByStage"
	GroupByTaxon    = "/Lookup/ByTaxon"
	GroupTaxonomy   = "/Taxonomy"
	GroupTaxNodes   = "/Taxonomy/Nodes"
	DatasetTaxNames = "/Taxonomy/Names"
	GroupPartitions = "/Partitions"
	DatasetRepeatPeps = "/RepeatPeps"
	GroupFileHistory  = "/FileHistory"
)

// FamilyBin computes the two-character prefix bin for an accession,
// the schema invariant spec.md §4.2 requires every reader to compute
// identically (keeps per-group fan-out near 100^2 regardless of
// collection size).
func FamilyBin(accession string) string {
	if len(accession) < 2 {
		return accession
	}
	return accession[:2]
}

// FamilyGroupPath returns the container group path for one family's
// record, e.g. "/Families/DF/DF000000001".
func FamilyGroupPath(accession string) string {
	return fmt.Sprintf("%s/%s/%s", GroupFamilies, FamilyBin(accession), accession)
}

// ByNamePath returns the lookup-index group path for a name prefix.
func ByNamePath(prefix string) string {
	return fmt.Sprintf("%s/%s", GroupByName, prefix)
}

// ByStagePath returns the lookup-index group path for a search/buffer
// stage number.
func ByStagePath(stage int) string {
	return fmt.Sprintf("%s/%d", GroupByStage, stage)
}

// ByTaxonPath returns the lookup-index group path for a taxon id.
func ByTaxonPath(taxid uint32) string {
	return fmt.Sprintf("%s/%d", GroupByTaxon, taxid)
}

// TaxonNodePath returns the container group path for one taxon node.
func TaxonNodePath(taxid uint32) string {
	return fmt.Sprintf("%s/%d", GroupTaxNodes, taxid)
}

// PartitionPath returns the metadata group path for partition n,
// stored only in the root (partition 0) file.
func PartitionPath(n int) string {
	return fmt.Sprintf("%s/%d", GroupPartitions, n)
}

// Identity holds the file-identity attributes that must match across
// every file in one file set (spec.md §3 "File identity", §8 "every
// file set that opens successfully...").
type Identity struct {
	ExportName           string
	ExportDate           string
	SchemaVersionMajor    int
	SchemaVersionMinor    int
	PartitionNumber       int
	PartitionRootTaxonID  uint32
	FullPartitionTable    []int // partition numbers present in the full export
	CreatorFingerprint    string
}

// Matches reports whether two identities describe the same file set
// (export_name, export_date, schema_version and partition_table all
// equal — partition_number and partition_root_taxon_id are expected
// to differ per file).
func (id Identity) Matches(other Identity) bool {
	if id.ExportName != other.ExportName || id.ExportDate != other.ExportDate {
		return false
	}
	if id.SchemaVersionMajor != other.SchemaVersionMajor {
		return false
	}
	if len(id.FullPartitionTable) != len(other.FullPartitionTable) {
		return false
	}
	for i, p := range id.FullPartitionTable {
		if other.FullPartitionTable[i] != p {
			return false
		}
	}
	return true
}
