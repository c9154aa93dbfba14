package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/msto63/wsterm/internal/functions"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the generator functions usable in expressions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := functions.NewDefaultRegistry(functions.Options{})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range reg.Names() {
			fn, _ := reg.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\n", name, fn.Info())
			if verbose {
				for _, u := range fn.Usage() {
					fmt.Fprintf(w, "\t  %s\n", u)
				}
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
