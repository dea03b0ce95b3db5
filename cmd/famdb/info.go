package main

import (
	"fmt"

	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/cliutil"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print metadata about the opened file set",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer fs.Close()

		withHistory, _ := cmd.Flags().GetBool("history")
		res, err := eng.Info(withHistory)
		if err != nil {
			return err
		}

		var out []byte
		out = append(out, []byte(fmt.Sprintf("Export: %s (%s)\n", res.ExportName, res.ExportDate))...)
		out = append(out, []byte(fmt.Sprintf("Schema version: %d.%d\n\n", res.SchemaVersionMajor, res.SchemaVersionMinor))...)

		tbl := cliutil.NewTable([]stable.Column{
			{Header: "partition"}, {Header: "installed"}, {Header: "root-taxon"}, {Header: "families", Align: stable.AlignRight},
		})
		for _, p := range res.Partitions {
			tbl.AddRow([]interface{}{
				p.Number,
				cliutil.BoolStr("yes", "no", p.Installed),
				fmt.Sprintf("%d %s", p.RootTaxonID, p.RootName),
				cliutil.Comma(p.FamilyCount),
			})
		}
		out = append(out, tbl.Render(cliutil.PlainTableStyle)...)

		if withHistory {
			out = append(out, []byte("\nHistory:\n")...)
			for _, h := range res.History {
				out = append(out, []byte(fmt.Sprintf("  %s %s completed=%t\n", h.Timestamp.Format("2006-01-02T15:04:05"), h.Operation, h.Completed))...)
			}
		}

		return writeOut(cmd, out)
	},
}

func init() {
	infoCmd.Flags().Bool("history", false, "include the merged change history")
	RootCmd.AddCommand(infoCmd)
}
