package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

// decodeAll decodes every resolved region, reporting all failures together.
func decodeAll(set *settings.RegionSet) ([]*settings.Deployment, error) {
	var (
		deployments []*settings.Deployment
		errs        error
	)
	for _, r := range set.All() {
		d, err := settings.Decode(r)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "region %s", r.Region()))
			continue
		}
		deployments = append(deployments, d)
	}
	if errs != nil {
		return nil, errs
	}
	return deployments, nil
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Resolve and type-check every target region",
		Long:  "validate exits non-zero when any target region is missing required keys, has a region mismatch or holds a malformed value.",
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

			rows := make([][]string, 0, len(deployments))
			for _, d := range deployments {
				rows = append(rows, []string{d.Region, d.Account, d.Bootstrap.EffectiveQualifier(), "ok"})
			}
			if err := writeTable(cmd.OutOrStdout(), []string{"Region", "Account", "Qualifier", "Status"}, rows); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nprofile %s: %d region(s) valid\n", l.profile, len(deployments))
			return err
		},
	}
}
