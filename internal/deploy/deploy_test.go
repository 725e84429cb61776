package deploy

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

func deployment(region string) *settings.Deployment {
	return &settings.Deployment{
		Region:       region,
		Account:      "111122223333",
		DeployRegion: region,
		Bootstrap: settings.Bootstrap{
			CloudFormationExecutionRoleARN: "arn:aws:iam::111122223333:role/cfn-exec",
			DeployRoleARN:                  "arn:aws:iam::111122223333:role/deploy",
			FileAssetPublishingRoleARN:     "arn:aws:iam::111122223333:role/file-publishing",
			LookupRoleARN:                  "arn:aws:iam::111122223333:role/lookup",
			FileAssetsBucketName:           "cdk-assets",
			LegacyQualifier:                "hnb659fds",
			VersionParameter:               "/swift/cdk-bootstrap/version",
		},
		Naming: settings.Naming{
			Workload:       "idmz",
			AppEnvironment: "gw",
			VPCInstance:    "01",
			IDMZRegion:     "euc1",
			LZEnv:          "dev",
		},
	}
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  Kind
	}{
		{string(KindNetwork), KindNetwork},
		{string(KindAPIGateway), KindAPIGateway},
	} {
		k, err := ParseKind(tc.input)
		require.NoError(t, err)
		require.Equal(t, tc.want, k)
	}

	_, err := ParseKind("typo")
	require.Error(t, err)
}

func TestResourceName(t *testing.T) {
	assert.Equal(t, "sw-idmz-gw-idmz-sg-nlb-01-euc1-dev-aws", ResourceName(deployment("eu-central-1"), "idmz-sg-nlb"))
}

func TestSynthesizerFor(t *testing.T) {
	d := deployment("eu-central-1")
	s := SynthesizerFor(d)
	assert.Equal(t, "hnb659fds", s.Qualifier)
	assert.Equal(t, d.Bootstrap.DeployRoleARN, s.DeployRoleARN)
	assert.Empty(t, s.ImageAssetPublishingRoleARN)
	assert.Equal(t, Environment{Account: "111122223333", Region: "eu-central-1"}, EnvironmentFor(d))
}

func TestGlobalTags(t *testing.T) {
	tests := []struct {
		name    string
		global  map[string]string
		profile string
		want    map[string]string
	}{
		{
			name:    "from settings",
			global:  map[string]string{"owner": "platform", "workload": "idmz"},
			profile: "qa",
			want:    map[string]string{TagOwner: "platform", TagApplication: "idmz", TagEnvironmentProfile: "qa"},
		},
		{
			name:    "defaults",
			global:  map[string]string{},
			profile: "develop",
			want:    map[string]string{TagOwner: "default-owner", TagApplication: "default-workload", TagEnvironmentProfile: "develop"},
		},
		{
			name:    "empty values skipped",
			global:  map[string]string{"owner": ""},
			profile: "",
			want:    map[string]string{TagApplication: "default-workload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GlobalTags(tt.global, tt.profile))
		})
	}
}

func TestBuildPlan(t *testing.T) {
	plan := BuildPlan("develop", map[string]string{"owner": "platform"},
		[]*settings.Deployment{deployment("eu-central-1"), deployment("eu-west-1")})

	assert.Equal(t, []string{
		"IDMZ-Network-Stack-eu-central-1",
		"iDMZ-APIGateway-HTTP-API-eu-central-1",
		"IDMZ-Network-Stack-eu-west-1",
		"iDMZ-APIGateway-HTTP-API-eu-west-1",
	}, plan.StackIDs())

	gw := plan.Stacks[1]
	assert.Equal(t, KindAPIGateway, gw.Kind)
	assert.Equal(t, []string{"IDMZ-Network-Stack-eu-central-1"}, gw.DependsOn)
	assert.Equal(t, "platform", gw.Tags[TagOwner])
	assert.Equal(t, "eu-central-1", gw.Environment.Region)

	// tags are copied per stack
	plan.Stacks[0].Tags["extra"] = "x"
	assert.NotContains(t, plan.Stacks[1].Tags, "extra")
	assert.NotContains(t, plan.Tags, "extra")
}

type failingProvisioner struct {
	RecordingProvisioner
	failOn string
}

func (f *failingProvisioner) Provision(ctx context.Context, spec StackSpec) (Handle, error) {
	if spec.ID == f.failOn {
		return Handle{}, errors.New("stack rollback")
	}
	return f.RecordingProvisioner.Provision(ctx, spec)
}

func TestApply(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	plan := BuildPlan("develop", nil, []*settings.Deployment{deployment("eu-central-1")})

	rec := &RecordingProvisioner{}
	handles, err := Apply(context.Background(), rec, plan, zap.New(core))
	require.NoError(t, err)

	require.Len(t, handles, 2)
	assert.Equal(t, "IDMZ-Network-Stack-eu-central-1", handles[0].StackID)
	assert.Equal(t, "dry-run:111122223333/IDMZ-Network-Stack-eu-central-1", handles[0].Ref)
	assert.Equal(t, plan.StackIDs(), specIDs(rec.Specs()))
	assert.Equal(t, 2, logs.FilterMessage("provisioning stack").Len())
}

func specIDs(specs []StackSpec) []string {
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return ids
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	plan := BuildPlan("develop", nil, []*settings.Deployment{deployment("eu-central-1"), deployment("eu-west-1")})
	p := &failingProvisioner{failOn: "iDMZ-APIGateway-HTTP-API-eu-central-1"}

	handles, err := Apply(context.Background(), p, plan, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iDMZ-APIGateway-HTTP-API-eu-central-1")
	require.Len(t, handles, 1)
	assert.Len(t, p.Specs(), 1)
}

func TestApplyRejectsMissingDependency(t *testing.T) {
	plan := BuildPlan("develop", nil, []*settings.Deployment{deployment("eu-central-1")})
	plan.Stacks = plan.Stacks[1:]

	_, err := Apply(context.Background(), &RecordingProvisioner{}, plan, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not provisioned")
}

func TestApplyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := BuildPlan("develop", nil, []*settings.Deployment{deployment("eu-central-1")})
	handles, err := Apply(ctx, &RecordingProvisioner{}, plan, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, handles)
}
