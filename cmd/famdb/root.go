// famdb is the command-line tool: one file per subcommand, wired to
// the internal/query and internal/appendcmd operations, grounded on
// the teacher's unikmer/cmd root/subcommand layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/famerr"
	"github.com/Dfam-consortium/famdb-go/internal/famlog"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "famdb",
	Short: "Query and extend a FamDB transposable-element family database",
	Long: `famdb - transposable-element family and taxonomy database tool

Queries an offline, read-mostly store of TE family models and an NCBI
taxonomy subset, as used by genome-annotation pipelines such as
RepeatMasker. Supports metadata inspection, name lookup, taxonomy
lineage walks, single- and bulk-family retrieval in several output
formats, and appending new families from an EMBL-format input file.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and maps any returned error to a CLI
// exit code via famerr.ExitCode (spec.md §7).
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(famerr.ExitCode(err))
}

func init() {
	RootCmd.PersistentFlags().StringP("dir", "i", ".", "directory containing the famdb file set")
	RootCmd.PersistentFlags().StringP("log-level", "l", famlog.LevelInfo, "log level: debug, info, warning, error")

	cobra.OnInitialize(func() {
		level, _ := RootCmd.PersistentFlags().GetString("log-level")
		if err := famlog.SetLevel(level); err != nil {
			fmt.Fprintf(os.Stderr, "famdb: invalid log level %q: %s\n", level, err)
		}
	})
}
