package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the available topics and languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		cyan := color.New(color.FgCyan)
		dim := color.New(color.FgHiBlack)

		fmt.Fprintln(out)
		for _, t := range tutor.Topics() {
			cyan.Fprintf(out, "  %-16s", t.ID)
			fmt.Fprintf(out, " %s\n", t.Name)
			dim.Fprintf(out, "  %-16s %s\n", "", t.Description)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Languages: %s\n\n", strings.Join(tutor.Languages(), ", "))
		return nil
	},
}
