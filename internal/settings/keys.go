package settings

const (
	// GlobalSection holds the defaults shared by every target region.
	GlobalSection = "cdk_settings"

	// TargetRegionKey is added to every resolved configuration and always
	// holds the requested region.
	TargetRegionKey = "current_target_region"

	// TargetRegionsKey lists the regions a profile deploys to, comma separated.
	TargetRegionsKey = "target_regions"

	KeyStackDeployAccount         = "stack_deploy_account"
	KeyStackDeployRegion          = "stack_deploy_region"
	KeyCloudFormationRoleARN      = "bootstrap_cloudformation_role_arn"
	KeyDeployRoleARN              = "bootstrap_deploy_role_arn"
	KeyFileAssetPublishingRoleARN = "bootstrap_file_asset_publishing_role_arn"
	KeyLookupRoleARN              = "bootstrap_lookup_role_arn"
	KeyFileAssetsBucketName       = "bootstrap_file_assets_bucket_name"
)

// RequiredKey is a key that must be present and non-empty after merging.
type RequiredKey struct {
	Name        string
	Description string
}

func (k RequiredKey) String() string {
	return "'" + k.Name + "' (" + k.Description + ")"
}

// RequiredKeys are checked in this order; errors list them in the same order.
var RequiredKeys = []RequiredKey{
	{Name: KeyStackDeployAccount, Description: "Deployment account ID"},
	{Name: KeyStackDeployRegion, Description: "Deployment AWS region"},
	{Name: KeyCloudFormationRoleARN, Description: "CloudFormation execution role ARN"},
	{Name: KeyDeployRoleARN, Description: "Deployment action role ARN"},
	{Name: KeyFileAssetPublishingRoleARN, Description: "File asset publishing role ARN"},
	{Name: KeyLookupRoleARN, Description: "Lookup role ARN"},
	{Name: KeyFileAssetsBucketName, Description: "File assets S3 bucket name"},
}
