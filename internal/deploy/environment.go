// Package deploy turns resolved deployment settings into an ordered plan of
// stacks and hands each stack to a Provisioner.
//
// Nothing here talks to a cloud provider. Every value a stack needs is
// carried on its StackSpec; there is no process-wide configuration.
package deploy

import (
	"strings"

	"github.com/samber/lo"

	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

// Environment is the account and region a stack deploys into.
type Environment struct {
	Account string
	Region  string
}

// EnvironmentFor returns the deployment environment of d.
func EnvironmentFor(d *settings.Deployment) Environment {
	return Environment{Account: d.Account, Region: d.DeployRegion}
}

// Synthesizer holds the bootstrap resources used to publish and deploy a
// stack. The image asset fields are optional.
type Synthesizer struct {
	Qualifier                      string
	CloudFormationExecutionRoleARN string
	DeployRoleARN                  string
	FileAssetPublishingRoleARN     string
	ImageAssetPublishingRoleARN    string
	LookupRoleARN                  string
	FileAssetsBucketName           string
	ImageAssetsRepositoryName      string
	VersionParameter               string
}

// SynthesizerFor returns the synthesizer settings of d.
func SynthesizerFor(d *settings.Deployment) Synthesizer {
	b := d.Bootstrap
	return Synthesizer{
		Qualifier:                      b.EffectiveQualifier(),
		CloudFormationExecutionRoleARN: b.CloudFormationExecutionRoleARN,
		DeployRoleARN:                  b.DeployRoleARN,
		FileAssetPublishingRoleARN:     b.FileAssetPublishingRoleARN,
		ImageAssetPublishingRoleARN:    b.ImageAssetPublishingRoleARN,
		LookupRoleARN:                  b.LookupRoleARN,
		FileAssetsBucketName:           b.FileAssetsBucketName,
		ImageAssetsRepositoryName:      b.ImageAssetsRepositoryName,
		VersionParameter:               b.VersionParameter,
	}
}

// ResourceName returns the sw-* name of a resource:
// sw-<workload>-<appenvironment>-<name>-<vpc_instance>-<idmzregion>-<lzenv>-aws.
func ResourceName(d *settings.Deployment, name string) string {
	n := d.Naming
	return strings.Join([]string{
		"sw", n.Workload, n.AppEnvironment, name, n.VPCInstance, n.IDMZRegion, n.LZEnv, "aws",
	}, "-")
}

const (
	TagOwner              = "sw:owner"
	TagApplication        = "sw:application"
	TagEnvironmentProfile = "sw:environment_profile"

	defaultOwner       = "default-owner"
	defaultApplication = "default-workload"
)

// GlobalTags returns the tags applied to every stack of a profile, taken from
// the global section. owner and workload fall back to defaults when absent;
// tags whose value is empty are left out.
func GlobalTags(global map[string]string, profile string) map[string]string {
	lookup := func(key, def string) string {
		if v, ok := global[key]; ok {
			return v
		}
		return def
	}

	return lo.OmitByValues(map[string]string{
		TagOwner:              lookup("owner", defaultOwner),
		TagApplication:        lookup("workload", defaultApplication),
		TagEnvironmentProfile: profile,
	}, []string{""})
}
