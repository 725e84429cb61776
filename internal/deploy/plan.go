package deploy

import (
	"github.com/samber/lo"

	"github.com/trufnetwork/idmz-gateway/internal/settings"
)

// StackSpec is everything needed to provision one stack.
type StackSpec struct {
	ID          string
	Kind        Kind
	Environment Environment
	Synthesizer Synthesizer
	Tags        map[string]string
	// stacks that must be provisioned first
	DependsOn []string
	// Settings is the typed configuration of the stack's region.
	Settings *settings.Deployment
}

// Plan is the ordered list of stacks for one profile.
type Plan struct {
	Profile string
	Tags    map[string]string
	Stacks  []StackSpec
}

// BuildPlan emits, for each deployment in order, the network stack followed
// by the API gateway stack that depends on it. Every stack carries the
// profile's global tags.
func BuildPlan(profile string, global map[string]string, deployments []*settings.Deployment) Plan {
	tags := GlobalTags(global, profile)
	plan := Plan{Profile: profile, Tags: tags}

	for _, d := range deployments {
		env := EnvironmentFor(d)
		synth := SynthesizerFor(d)

		network := StackSpec{
			ID:          KindNetwork.stackID(d.Region),
			Kind:        KindNetwork,
			Environment: env,
			Synthesizer: synth,
			Tags:        lo.Assign(tags),
			Settings:    d,
		}
		gateway := StackSpec{
			ID:          KindAPIGateway.stackID(d.Region),
			Kind:        KindAPIGateway,
			Environment: env,
			Synthesizer: synth,
			Tags:        lo.Assign(tags),
			DependsOn:   []string{network.ID},
			Settings:    d,
		}
		plan.Stacks = append(plan.Stacks, network, gateway)
	}
	return plan
}

// StackIDs returns the stack ids in plan order.
func (p Plan) StackIDs() []string {
	return lo.Map(p.Stacks, func(s StackSpec, _ int) string { return s.ID })
}
