package settings

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trufnetwork/idmz-gateway/internal/properties"
)

const completeGlobal = `[cdk_settings]
target_regions = eu-central-1, eu-west-1
stack_deploy_account = 111122223333
stack_deploy_region = eu-central-1
bootstrap_cloudformation_role_arn = arn:aws:iam::111122223333:role/cdk-cfn-exec
bootstrap_deploy_role_arn = arn:aws:iam::111122223333:role/cdk-deploy
bootstrap_file_asset_publishing_role_arn = arn:aws:iam::111122223333:role/cdk-file-publishing
bootstrap_lookup_role_arn = arn:aws:iam::111122223333:role/cdk-lookup
bootstrap_file_assets_bucket_name = cdk-assets-111122223333
workload = idmz
lzenv = dev
vpc_instance = 01
`

func mustParse(t *testing.T, content string) *properties.Document {
	t.Helper()
	doc, err := properties.Parse([]byte(content))
	require.NoError(t, err)
	return doc
}

func TestResolveRegionOverridesGlobal(t *testing.T) {
	doc := mustParse(t, completeGlobal+`
[eu-west-1]
stack_deploy_region = eu-west-1
lzenv = dev-west
`)

	resolved, err := Resolve(doc, GlobalSection, "eu-west-1")
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", resolved.Region())
	assert.Equal(t, "eu-west-1", resolved.Value(KeyStackDeployRegion))
	assert.Equal(t, "dev-west", resolved.Value("lzenv"))
	assert.Equal(t, "idmz", resolved.Value("workload"))
	assert.Equal(t, "eu-west-1", resolved.Value(TargetRegionKey))
}

func TestResolveExampleProfileRegionMismatch(t *testing.T) {
	doc := mustParse(t, `[cdk_settings]
stack_deploy_account = 111122223333
stack_deploy_region = us-east-1
bootstrap_cloudformation_role_arn = arn:aws:iam::111122223333:role/cdk-cfn-exec
bootstrap_deploy_role_arn = arn:aws:iam::111122223333:role/cdk-deploy
bootstrap_file_asset_publishing_role_arn = arn:aws:iam::111122223333:role/cdk-file-publishing
bootstrap_lookup_role_arn = arn:aws:iam::111122223333:role/cdk-lookup
bootstrap_file_assets_bucket_name = cdk-assets-111122223333

[eu-west-1]
stack_deploy_region = eu-west-1
`)

	_, err := Resolve(doc, GlobalSection, "eu-west-1")
	require.NoError(t, err)

	_, err = Resolve(doc, GlobalSection, "eu-central-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegionMismatch)

	var mismatch *RegionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "us-east-1", mismatch.Configured)
	assert.Equal(t, "eu-central-1", mismatch.Target)
	assert.Contains(t, err.Error(), "us-east-1")
	assert.Contains(t, err.Error(), "eu-central-1")
}

func TestResolveGlobalRegionMismatch(t *testing.T) {
	doc := mustParse(t, completeGlobal)

	_, err := Resolve(doc, GlobalSection, "us-east-1")
	assert.ErrorIs(t, err, ErrRegionMismatch)
}

func TestResolveTargetRegionCannotBeOverridden(t *testing.T) {
	doc := mustParse(t, completeGlobal+`current_target_region = from-global

[eu-central-1]
current_target_region = from-region
`)

	resolved, err := Resolve(doc, GlobalSection, "eu-central-1")
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", resolved.Value(TargetRegionKey))
}

func TestResolveMissingRegionSectionUsesGlobal(t *testing.T) {
	doc := mustParse(t, completeGlobal)

	resolved, err := Resolve(doc, GlobalSection, "eu-central-1")
	require.NoError(t, err)
	assert.Equal(t, "111122223333", resolved.Value(KeyStackDeployAccount))
}

func TestResolveMissingSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty document", content: ""},
		{name: "only region section", content: "[eu-central-1]\nstack_deploy_region = eu-central-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(mustParse(t, tt.content), GlobalSection, "eu-central-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingSection)

			var missing *MissingSectionError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, GlobalSection, missing.Section)
		})
	}
}

func TestResolveReportsEveryMissingKey(t *testing.T) {
	doc := mustParse(t, `[cdk_settings]
stack_deploy_region = eu-central-1
bootstrap_deploy_role_arn = arn:aws:iam::111122223333:role/cdk-deploy
bootstrap_lookup_role_arn =
`)

	_, err := Resolve(doc, GlobalSection, "eu-central-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredKeys)
	assert.NotErrorIs(t, err, ErrRegionMismatch)

	var missing *MissingRequiredKeysError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{
		KeyStackDeployAccount,
		KeyCloudFormationRoleARN,
		KeyFileAssetPublishingRoleARN,
		KeyLookupRoleARN,
		KeyFileAssetsBucketName,
	}, missing.Keys)
	assert.Contains(t, err.Error(), "'stack_deploy_account' (Deployment account ID)")
	assert.Contains(t, err.Error(), "'bootstrap_file_assets_bucket_name' (File assets S3 bucket name)")
}

func TestResolveMissingKeysNamesPropertiesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "resources/application.qa.properties"
	require.NoError(t, afero.WriteFile(fs, path, []byte("[cdk_settings]\nstack_deploy_region = eu-central-1\n"), 0o644))

	doc, err := properties.Load(context.Background(), properties.NewFileSource(fs, path, nil))
	require.NoError(t, err)

	_, err = Resolve(doc, GlobalSection, "eu-central-1")
	require.Error(t, err)

	var missing *MissingRequiredKeysError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "file:"+path, missing.Source)
	assert.Contains(t, err.Error(), "in file:"+path)
}

func TestResolveMissingDeployRegionIsMissingNotMismatch(t *testing.T) {
	doc := mustParse(t, completeGlobal+`
[eu-central-1]
stack_deploy_region =
`)

	_, err := Resolve(doc, GlobalSection, "eu-central-1")
	assert.ErrorIs(t, err, ErrMissingRequiredKeys)
	assert.NotErrorIs(t, err, ErrRegionMismatch)
}

func TestResolveIsIdempotentAndDoesNotMutate(t *testing.T) {
	doc := mustParse(t, completeGlobal+`
[eu-west-1]
stack_deploy_region = eu-west-1
`)
	before, _ := doc.Section(GlobalSection)

	first, err := Resolve(doc, GlobalSection, "eu-west-1")
	require.NoError(t, err)
	second, err := Resolve(doc, GlobalSection, "eu-west-1")
	require.NoError(t, err)

	assert.Equal(t, first.Map(), second.Map())
	after, _ := doc.Section(GlobalSection)
	assert.Equal(t, before, after)
	assert.False(t, doc.Has("current_target_region"))
	_, inGlobal := after[TargetRegionKey]
	assert.False(t, inGlobal)
}

func TestResolvedIsReadOnly(t *testing.T) {
	resolved, err := Resolve(mustParse(t, completeGlobal), GlobalSection, "eu-central-1")
	require.NoError(t, err)

	m := resolved.Map()
	m["workload"] = "changed"
	assert.Equal(t, "idmz", resolved.Value("workload"))

	keys := resolved.Keys()
	assert.IsIncreasing(t, keys)
	assert.Equal(t, resolved.Len(), len(keys))
}

func TestResolverCustomRules(t *testing.T) {
	doc := mustParse(t, "[globals]\nstack_deploy_region = eu-central-1\n")

	r := NewResolver(WithGlobalSection("globals"), WithRules(NewRuleSet(&RegionMatchRule{})))
	resolved, err := r.Resolve(doc, "eu-central-1")
	require.NoError(t, err)
	assert.Equal(t, "globals", r.GlobalSection())
	assert.Equal(t, "eu-central-1", resolved.Value(KeyStackDeployRegion))
}

func TestResolverLogsResolution(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewResolver(WithLogger(zap.New(core)))

	_, err := r.Resolve(mustParse(t, completeGlobal), "eu-central-1")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("no region section, using global defaults only").Len())
	entries := logs.FilterMessage("resolved deployment settings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "eu-central-1", entries[0].ContextMap()["region"])
}

func TestRuleSetRules(t *testing.T) {
	rs := DefaultRules()
	require.Len(t, rs.Rules(), 2)
	assert.Equal(t, "required-keys", rs.Rules()[0].Name())
	assert.Equal(t, "region-match", rs.Rules()[1].Name())

	rs.AddRule(&RegionMatchRule{})
	assert.Len(t, rs.Rules(), 3)
}
