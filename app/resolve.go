package app

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the merged settings of each target region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range l.regions.All() {
				if _, err := fmt.Fprintf(out, "## %s (profile %s)\n\n", r.Region(), l.profile); err != nil {
					return err
				}
				rows := lo.Map(r.Keys(), func(k string, _ int) []string { return []string{k, r.Value(k)} })
				if err := writeTable(out, []string{"Key", "Value"}, rows); err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
