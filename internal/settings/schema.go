package settings

// Deployment is the typed view of a resolved configuration. Fields are
// decoded by key (mapstructure tag) with explicit conversions: booleans via
// strconv.ParseBool, integers via strconv.Atoi, lists from a JSON array or a
// comma separated string. Nothing is evaluated.
type Deployment struct {
	Region        string   `mapstructure:"current_target_region" validate:"required"`
	Account       string   `mapstructure:"stack_deploy_account"  validate:"required,numeric,len=12"`
	DeployRegion  string   `mapstructure:"stack_deploy_region"   validate:"required,eqfield=Region"`
	TargetRegions []string `mapstructure:"target_regions"`

	Bootstrap      Bootstrap      `mapstructure:",squash"`
	Naming         Naming         `mapstructure:",squash"`
	Network        Network        `mapstructure:",squash"`
	Ingress        Ingress        `mapstructure:",squash"`
	EndpointPolicy EndpointPolicy `mapstructure:",squash"`
	LoadBalancer   LoadBalancer   `mapstructure:",squash"`
}

// Bootstrap describes the pre-provisioned bootstrap stack the deployment
// synthesizes against.
type Bootstrap struct {
	CloudFormationExecutionRoleARN string `mapstructure:"bootstrap_cloudformation_role_arn"         validate:"required,startswith=arn:"`
	DeployRoleARN                  string `mapstructure:"bootstrap_deploy_role_arn"                 validate:"required,startswith=arn:"`
	FileAssetPublishingRoleARN     string `mapstructure:"bootstrap_file_asset_publishing_role_arn"  validate:"required,startswith=arn:"`
	ImageAssetPublishingRoleARN    string `mapstructure:"bootstrap_image_asset_publishing_role_arn" validate:"omitempty,startswith=arn:"`
	LookupRoleARN                  string `mapstructure:"bootstrap_lookup_role_arn"                 validate:"required,startswith=arn:"`
	FileAssetsBucketName           string `mapstructure:"bootstrap_file_assets_bucket_name"         validate:"required"`
	ImageAssetsRepositoryName      string `mapstructure:"bootstrap_image_assets_repository_name"`
	Qualifier                      string `mapstructure:"bootstrap_qualifier"`
	// older profiles carry the qualifier under this name
	LegacyQualifier  string `mapstructure:"synthesizer"`
	VersionParameter string `mapstructure:"bootstrap_cdk_version_ssm_param_path" validate:"startswith=/"`
}

// Naming holds the parts of the sw-* resource naming convention and tags.
type Naming struct {
	Workload       string `mapstructure:"workload"`
	AppEnvironment string `mapstructure:"appenvironment"`
	VPCInstance    string `mapstructure:"vpc_instance"`
	IDMZRegion     string `mapstructure:"idmzregion"`
	LZEnv          string `mapstructure:"lzenv"`
	Owner          string `mapstructure:"owner"`
}

// Network describes the iDMZ VPC and its subnets.
type Network struct {
	ExistingVPCID     string `mapstructure:"existing_vpc_id"`
	MaxAZs            int    `mapstructure:"max_azs"                     validate:"gte=1,lte=6"`
	CIDRBlock         string `mapstructure:"vpc_cidr_block"              validate:"cidrv4"`
	VPCESubnetName    string `mapstructure:"existing_vpce_subnet_name"   validate:"required"`
	VPCECIDRMask      int    `mapstructure:"vpce1_cidr_mask"             validate:"gte=16,lte=28"`
	NLBSubnetName     string `mapstructure:"existing_nlb_subnet_name"    validate:"required"`
	NLBCIDRMask       int    `mapstructure:"nlb_cidr_mask"               validate:"gte=16,lte=28"`
	VPCLinkSubnetName string `mapstructure:"existing_vpclink_subnet_name" validate:"required"`
	VPCLinkCIDRMask   int    `mapstructure:"vpc_link_cidr_mask"          validate:"gte=16,lte=28"`
}

// Ingress describes the public entry point and the endpoint service behind it.
type Ingress struct {
	Name               string   `mapstructure:"ingress_name"`
	ExternalZoneName   string   `mapstructure:"idmz_external_zone_name"`
	ExternalZoneID     string   `mapstructure:"idmz_external_zone_id"`
	VPCEServiceName    string   `mapstructure:"vpce_service_name"`
	VPCEServiceTLSFQDN string   `mapstructure:"vpce_service_tls_fqdn"`
	IntegrationPort    int      `mapstructure:"integration_port" validate:"omitempty,gte=1,lte=65535"`
	Routes             []string `mapstructure:"routes"`
}

// EndpointPolicy is the optional resource policy of the interface endpoint.
type EndpointPolicy struct {
	Allowed   bool   `mapstructure:"interface_vpce_policy_allowed"`
	Effect    string `mapstructure:"interface_vpce_policy_effect"    validate:"required_if=Allowed true"`
	Action    string `mapstructure:"interface_vpce_policy_action"    validate:"required_if=Allowed true"`
	Principal string `mapstructure:"interface_vpce_policy_principal" validate:"required_if=Allowed true"`
	Resource  string `mapstructure:"interface_vpce_policy_resource"  validate:"required_if=Allowed true"`
}

// LoadBalancer holds the NLB target group switches.
type LoadBalancer struct {
	ConnectionTermination bool `mapstructure:"nw_targetgroup_connection_termination"`
	PreserveClientIP      bool `mapstructure:"nw_preserve_client_ip"`
}

const (
	defaultMaxAZs            = 2
	defaultCIDRBlock         = "10.0.0.0/16"
	defaultCIDRMask          = 24
	defaultVPCESubnetName    = "idmz-subnet-vpce1"
	defaultNLBSubnetName     = "idmz-subnet-nlb"
	defaultVPCLinkSubnetName = "idmz-subnet-vpclink"
	defaultVersionParameter  = "/swift/cdk-bootstrap/version"
)

func defaultDeployment() Deployment {
	return Deployment{
		Bootstrap: Bootstrap{
			VersionParameter: defaultVersionParameter,
		},
		Network: Network{
			MaxAZs:            defaultMaxAZs,
			CIDRBlock:         defaultCIDRBlock,
			VPCESubnetName:    defaultVPCESubnetName,
			VPCECIDRMask:      defaultCIDRMask,
			NLBSubnetName:     defaultNLBSubnetName,
			NLBCIDRMask:       defaultCIDRMask,
			VPCLinkSubnetName: defaultVPCLinkSubnetName,
			VPCLinkCIDRMask:   defaultCIDRMask,
		},
	}
}

// EffectiveQualifier returns bootstrap_qualifier, falling back to the legacy
// synthesizer key.
func (b Bootstrap) EffectiveQualifier() string {
	if b.Qualifier != "" {
		return b.Qualifier
	}
	return b.LegacyQualifier
}
