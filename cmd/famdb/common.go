package main

import (
	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/cliutil"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/fileset"
	"github.com/Dfam-consortium/famdb-go/internal/query"
)

// openEngine opens the -i/--dir file set and wraps it in a query
// Engine. Callers must fs.Close() the returned FileSet when done.
func openEngine(cmd *cobra.Command) (*fileset.FileSet, *query.Engine, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, nil, famerr.User("internal flag error: %s", err)
	}
	fs, err := fileset.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	return fs, query.New(fs), nil
}

// writeOut writes out to the command's stdout, translating a broken
// downstream pipe into a clean, silent termination rather than an
// error (spec.md §5's cancellation rule).
func writeOut(cmd *cobra.Command, out []byte) error {
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		if cliutil.IsBrokenPipe(err) {
			return nil
		}
		return famerr.IO(err, "write output")
	}
	return nil
}
