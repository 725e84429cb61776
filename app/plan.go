package app

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/trufnetwork/idmz-gateway/internal/deploy"
)

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the stacks a deployment of the profile would create",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			deployments, err := decodeAll(l.regions)
			if err != nil {
				return err
			}

			global, _ := l.doc.Section(opts.globalSection)
			plan := deploy.BuildPlan(l.profile, global, deployments)

			rec := &deploy.RecordingProvisioner{}
			handles, err := deploy.Apply(cmd.Context(), rec, plan, opts.logger)
			if err != nil {
				return err
			}

			rows := lo.Map(rec.Specs(), func(s deploy.StackSpec, i int) []string {
				return []string{
					s.ID,
					string(s.Kind),
					s.Environment.Account,
					s.Environment.Region,
					strings.Join(s.DependsOn, ", "),
					handles[i].Ref,
				}
			})
			return writeTable(cmd.OutOrStdout(), []string{"Stack", "Kind", "Account", "Region", "Depends on", "Ref"}, rows)
		},
	}
}
