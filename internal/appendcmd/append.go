package appendcmd

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/Dfam-consortium/famdb-go/internal/cliutil"
	"github.com/Dfam-consortium/famdb-go/internal/family"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/famlog"
	"github.com/Dfam-consortium/famdb-go/internal/schema"
	"github.com/Dfam-consortium/famdb-go/internal/taxonomy"
)

var partitionZeroPattern = regexp.MustCompile(`\.0\.h5$`)

// Options carries the `append` subcommand's flags (spec.md §6:
// "append [--name NAME] [--description TEXT] <infile.embl>
// [exclusion_list]").
type Options struct {
	Name           string
	Description    string
	Infile         string
	ExclusionList  string // optional, "" means none
}

// Append parses opts.Infile, drops any accession present in
// opts.ExclusionList, and writes every remaining family into dir's
// partition-0 file under C2's write-guard lifecycle (spec.md §4.8):
// this exercises the write half of the container/schema/family layers
// without a general ingestion pipeline — families are attributed to
// whichever clade their OC path already resolves to in the existing
// taxonomy, and routing across leaf partitions is out of scope for
// this bridge.
func Append(dir string, opts Options) error {
	expanded, err := cliutil.ExpandDir(dir)
	if err != nil {
		return famerr.User("cannot open famdb directory: %s", err)
	}

	rootPath, err := findPartitionZero(expanded)
	if err != nil {
		return err
	}

	parsed, err := parseEMBLFile(opts.Infile)
	if err != nil {
		return famerr.Data("could not parse %s: %s", opts.Infile, err)
	}

	excluded := map[string]bool{}
	if opts.ExclusionList != "" {
		excluded, err = loadExclusionList(opts.ExclusionList)
		if err != nil {
			return famerr.IO(err, "read exclusion list %s", opts.ExclusionList)
		}
	}

	c, guard, err := schema.OpenForWrite(rootPath, false, "append")
	if err != nil {
		return err
	}

	nodes, err := taxonomy.LoadStructure(c)
	if err != nil {
		guard.Abort()
		return famerr.IO(err, "load taxonomy structure from %s", rootPath)
	}
	if err := taxonomy.LoadNames(c, nodes); err != nil {
		guard.Abort()
		return famerr.IO(err, "load taxonomy names from %s", rootPath)
	}
	tree := taxonomy.Build(nodes)

	written := 0
	for _, pf := range parsed {
		f := pf.Family
		if excluded[f.Accession] {
			famlog.Log.Debugf("append: skipping excluded accession %s", f.Accession)
			continue
		}
		if opts.Name != "" {
			f.Name = &opts.Name
		}
		if opts.Description != "" {
			f.Description = &opts.Description
		}

		if err := family.Encode(c, f); err != nil {
			guard.Abort()
			return famerr.IO(err, "write family %s", f.Accession)
		}

		if id, ok := resolveClade(tree, pf.OrganismLineage); ok {
			f.Clades = []uint32{id}
			if err := taxonomy.AppendFamilyAccession(c, id, f.Accession); err != nil {
				guard.Abort()
				return famerr.IO(err, "record ownership of %s", f.Accession)
			}
		} else {
			famlog.Log.Warningf("append: %s's OC path %q did not resolve to a known taxon; family added without clade ownership", f.Accession, pf.OrganismLineage)
		}
		written++
	}

	if err := guard.Commit(); err != nil {
		return err
	}
	famlog.Log.Infof("append: wrote %d families to %s", written, rootPath)
	return nil
}

// resolveClade resolves an EMBL OC line's final (most specific) taxon
// name against tree, the same name index term resolution uses.
func resolveClade(tree *taxonomy.Tree, organismLineage string) (uint32, bool) {
	if organismLineage == "" {
		return 0, false
	}
	parts := splitLineage(organismLineage)
	if len(parts) == 0 {
		return 0, false
	}
	leaf := parts[len(parts)-1]
	r := tree.Resolve(leaf)
	return r.Unambiguous()
}

var semicolonSplit = regexp.MustCompile(`\s*;\s*`)

func splitLineage(s string) []string {
	var out []string
	for _, p := range semicolonSplit.Split(s, -1) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func findPartitionZero(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", famerr.IO(err, "read directory %s", dir)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if partitionZeroPattern.MatchString(e.Name()) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", famerr.User("no partition-0 file (*.0.h5) found in %s", dir)
}
