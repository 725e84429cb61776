package app

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

const developProfile = `[cdk_settings]
target_regions = eu-central-1,eu-west-1
stack_deploy_account = 111122223333
stack_deploy_region = eu-central-1
bootstrap_cloudformation_role_arn = arn:aws:iam::111122223333:role/cdk-cfn-exec
bootstrap_deploy_role_arn = arn:aws:iam::111122223333:role/cdk-deploy
bootstrap_file_asset_publishing_role_arn = arn:aws:iam::111122223333:role/cdk-file-publishing
bootstrap_lookup_role_arn = arn:aws:iam::111122223333:role/cdk-lookup
bootstrap_file_assets_bucket_name = cdk-assets-111122223333
synthesizer = hnb659fds
owner = platform-team
workload = idmz

[eu-west-1]
stack_deploy_region = eu-west-1
`

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CDK_ENV_PROFILE", "")
	t.Setenv("SRC_BRANCH", "")

	var out bytes.Buffer
	cmd := newRootCmd(fs, zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func profileFs(t *testing.T, name, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settings.PropertiesPath(settings.DefaultPropertiesDir, name), []byte(content), 0o644))
	return fs
}

func TestResolveCmd(t *testing.T) {
	out, err := run(t, profileFs(t, "develop", developProfile), "resolve")
	require.NoError(t, err)

	assert.Contains(t, out, "## eu-central-1 (profile develop)")
	assert.Contains(t, out, "## eu-west-1 (profile develop)")
	assert.Contains(t, out, "| Key")
	assert.Contains(t, out, "current_target_region")
	assert.Regexp(t, `stack_deploy_region\s+\|\s+eu-west-1`, out)
}

func TestResolveCmdSingleRegion(t *testing.T) {
	out, err := run(t, profileFs(t, "develop", developProfile), "resolve", "--region", "eu-west-1")
	require.NoError(t, err)
	assert.Contains(t, out, "## eu-west-1")
	assert.NotContains(t, out, "## eu-central-1")
}

func TestResolveCmdProfileFromFlagAndPath(t *testing.T) {
	fs := profileFs(t, "qa", developProfile)
	require.NoError(t, afero.WriteFile(fs, "/tmp/custom.properties", []byte(developProfile), 0o644))

	_, err := run(t, fs, "resolve", "--profile", "qa")
	require.NoError(t, err)

	_, err = run(t, fs, "resolve", "--properties", "/tmp/custom.properties")
	require.NoError(t, err)
}

func TestResolveCmdMissingProfile(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "resolve", "--profile", "live")
	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrFileNotFound)
	assert.Contains(t, err.Error(), "application.live.properties")
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, profileFs(t, "develop", developProfile), "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "hnb659fds")
	assert.Contains(t, out, "profile develop: 2 region(s) valid")
}

func TestValidateCmdFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "region mismatch",
			content: developProfile + "\n[eu-central-1]\nstack_deploy_region = us-east-1\n",
			want:    settings.ErrRegionMismatch,
		},
		{
			name:    "missing keys",
			content: "[cdk_settings]\ntarget_regions = eu-central-1\nstack_deploy_region = eu-central-1\n",
			want:    settings.ErrMissingRequiredKeys,
		},
		{
			name:    "malformed value",
			content: developProfile + "max_azs = many\n",
			want:    settings.ErrInvalidValue,
		},
		{
			name:    "no target regions",
			content: "[cdk_settings]\nstack_deploy_region = eu-central-1\n",
			want:    settings.ErrNoTargetRegions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, profileFs(t, "develop", tt.content), "validate")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlanCmd(t *testing.T) {
	out, err := run(t, profileFs(t, "develop", developProfile), "plan")
	require.NoError(t, err)

	network := bytes.Index([]byte(out), []byte("IDMZ-Network-Stack-eu-central-1 "))
	gateway := bytes.Index([]byte(out), []byte("iDMZ-APIGateway-HTTP-API-eu-central-1 "))
	require.NotEqual(t, -1, network)
	require.NotEqual(t, -1, gateway)
	assert.Less(t, network, gateway)
	assert.Contains(t, out, "iDMZ-APIGateway-HTTP-API-eu-west-1")
	assert.Contains(t, out, "dry-run:111122223333/IDMZ-Network-Stack-eu-west-1")
}

func TestVersionSubcommand(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")
}
