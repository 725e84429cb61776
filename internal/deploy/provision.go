package deploy

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Handle identifies a provisioned stack.
type Handle struct {
	StackID string
	Region  string
	// provider specific reference, such as a CloudFormation stack ARN
	Ref string
}

// Provisioner creates or updates the resources described by a StackSpec.
type Provisioner interface {
	Provision(ctx context.Context, spec StackSpec) (Handle, error)
}

// Apply provisions the stacks of plan in order and stops at the first
// failure. The handles of the stacks provisioned so far are returned with
// the error.
func Apply(ctx context.Context, p Provisioner, plan Plan, logger *zap.Logger) ([]Handle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	handles := make([]Handle, 0, len(plan.Stacks))
	done := make(map[string]bool, len(plan.Stacks))
	for _, spec := range plan.Stacks {
		if err := ctx.Err(); err != nil {
			return handles, err
		}
		if pending := lo.Filter(spec.DependsOn, func(id string, _ int) bool { return !done[id] }); len(pending) > 0 {
			return handles, errors.Errorf("stack %s depends on %v, which are not provisioned", spec.ID, pending)
		}

		logger.Info("provisioning stack",
			zap.String("stack", spec.ID),
			zap.String("kind", string(spec.Kind)),
			zap.String("account", spec.Environment.Account),
			zap.String("region", spec.Environment.Region))

		h, err := p.Provision(ctx, spec)
		if err != nil {
			return handles, errors.Wrapf(err, "failed to provision stack %s", spec.ID)
		}
		done[spec.ID] = true
		handles = append(handles, h)
	}
	return handles, nil
}

// RecordingProvisioner records specs instead of provisioning them. It backs
// dry runs.
type RecordingProvisioner struct {
	mu    sync.Mutex
	specs []StackSpec
}

func (r *RecordingProvisioner) Provision(_ context.Context, spec StackSpec) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs = append(r.specs, spec)
	return Handle{
		StackID: spec.ID,
		Region:  spec.Environment.Region,
		Ref:     fmt.Sprintf("dry-run:%s/%s", spec.Environment.Account, spec.ID),
	}, nil
}

// Specs returns the recorded specs in the order they were provisioned.
func (r *RecordingProvisioner) Specs() []StackSpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StackSpec, len(r.specs))
	copy(out, r.specs)
	return out
}
