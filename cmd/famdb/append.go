package main

import (
	"github.com/spf13/cobra"

	"github.com/Dfam-consortium/famdb-go/internal/appendcmd"
	"github.com/Dfam-consortium/famdb-go/internal/famerr"
)

var appendCmd = &cobra.Command{
	Use:   "append <infile.embl> [exclusion_list]",
	Short: "Append families from an EMBL-format file into the opened file set",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return famerr.User("internal flag error: %s", err)
		}

		opts := appendcmd.Options{Infile: args[0]}
		if len(args) > 1 {
			opts.ExclusionList = args[1]
		}
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Description, _ = cmd.Flags().GetString("description")

		if err := appendcmd.Append(dir, opts); err != nil {
			return err
		}
		return writeOut(cmd, []byte(""))
	},
}

func init() {
	appendCmd.Flags().String("name", "", "override the family name for every appended record")
	appendCmd.Flags().String("description", "", "override the family description for every appended record")
	RootCmd.AddCommand(appendCmd)
}
