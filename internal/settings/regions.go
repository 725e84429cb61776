package settings

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/trufnetwork/idmz-gateway/internal/properties"
)

// maxConcurrentResolves bounds the goroutines used by ResolveAll.
const maxConcurrentResolves = 4

// TargetRegions returns the regions listed under target_regions in the
// global section, trimmed and without empty entries or duplicates.
func TargetRegions(doc *properties.Document, globalSection string) ([]string, error) {
	global, ok := doc.Section(globalSection)
	if !ok {
		return nil, &MissingSectionError{Section: globalSection, Source: doc.Source()}
	}

	raw := global[TargetRegionsKey]
	if raw == "" {
		return nil, errors.Wrapf(ErrNoTargetRegions, "'%s' not defined in [%s] in %s",
			TargetRegionsKey, globalSection, sourceOrDefault(doc.Source()))
	}

	regions := lo.Uniq(lo.FilterMap(strings.Split(raw, ","), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	}))
	if len(regions) == 0 {
		return nil, errors.Wrapf(ErrNoTargetRegions, "'%s' is empty or invalid in [%s] in %s",
			TargetRegionsKey, globalSection, sourceOrDefault(doc.Source()))
	}
	return regions, nil
}

// RegionSet holds the resolved configuration of every target region of a
// deployment pass. It is built once by ResolveAll and only read afterwards.
type RegionSet struct {
	order    []string
	resolved map[string]*Resolved
}

// Get returns the configuration for region.
func (s *RegionSet) Get(region string) (*Resolved, bool) {
	r, ok := s.resolved[region]
	return r, ok
}

// Regions returns the regions in the order they were requested.
func (s *RegionSet) Regions() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// All returns the configurations in region order.
func (s *RegionSet) All() []*Resolved {
	return lo.Map(s.order, func(region string, _ int) *Resolved { return s.resolved[region] })
}

// ResolveAll resolves every region concurrently. All failures are reported
// together, one per region, so a broken profile can be fixed in one pass.
func (r *Resolver) ResolveAll(ctx context.Context, doc *properties.Document, regions []string) (*RegionSet, error) {
	results := make([]*Resolved, len(regions))
	errs := make([]error, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResolves)
	for i, region := range regions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resolved, err := r.Resolve(doc, region)
			if err != nil {
				errs[i] = errors.Wrapf(err, "region %s", region)
				return nil
			}
			results[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	set := &RegionSet{order: make([]string, 0, len(regions)), resolved: make(map[string]*Resolved, len(regions))}
	for i, region := range regions {
		if _, dup := set.resolved[region]; dup {
			continue
		}
		set.order = append(set.order, region)
		set.resolved[region] = results[i]
	}
	return set, nil
}

// ResolveAll resolves regions against doc with the default rules.
func ResolveAll(ctx context.Context, doc *properties.Document, environmentSection string, regions []string) (*RegionSet, error) {
	return NewResolver(WithGlobalSection(environmentSection)).ResolveAll(ctx, doc, regions)
}
