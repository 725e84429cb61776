package app

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trufnetwork/idmz-gateway/cmd/version"
	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

// RootCmd creates the idmzctl root command reading profiles from the local
// filesystem and logging through the global zap logger.
func RootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs(), zap.L())
}

func newRootCmd(fs afero.Fs, logger *zap.Logger) *cobra.Command {
	opts := &options{fs: fs, logger: logger}

	cmd := &cobra.Command{
		Use:   "idmzctl",
		Short: "Resolve, validate and plan iDMZ gateway deployments",
		Long: "idmzctl reads an environment profile (resources/application.<profile>.properties), " +
			"merges the [" + settings.GlobalSection + "] defaults with each target region's section " +
			"and validates the result before anything is deployed.",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.profile, "profile", "", "environment profile (default from CDK_ENV_PROFILE / SRC_BRANCH, else develop)")
	flags.StringVar(&opts.propertiesDir, "properties-dir", settings.DefaultPropertiesDir, "directory holding application.<profile>.properties")
	flags.StringVar(&opts.properties, "properties", "", "explicit properties location, a path or s3://bucket/key (overrides --profile lookup)")
	flags.StringVar(&opts.region, "region", "", "only resolve this target region")
	flags.StringVar(&opts.globalSection, "section", settings.GlobalSection, "section holding the global defaults")

	cmd.AddCommand(
		newResolveCmd(opts),
		newValidateCmd(opts),
		newPlanCmd(opts),
		version.NewVersionCmd(),
	)

	return cmd
}
