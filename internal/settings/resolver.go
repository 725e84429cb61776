package settings

import (
	"go.uber.org/zap"

	"github.com/trufnetwork/idmz-gateway/internal/properties"
)

// Resolver merges and validates profile settings.
type Resolver struct {
	globalSection string
	rules         *RuleSet
	logger        *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithGlobalSection overrides the section holding the shared defaults.
func WithGlobalSection(section string) ResolverOption {
	return func(r *Resolver) { r.globalSection = section }
}

// WithRules replaces the validation rules.
func WithRules(rules *RuleSet) ResolverOption {
	return func(r *Resolver) { r.rules = rules }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a resolver using [cdk_settings] and the default rules
// unless overridden.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		globalSection: GlobalSection,
		rules:         DefaultRules(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// GlobalSection returns the name of the section holding the shared defaults.
func (r *Resolver) GlobalSection() string {
	return r.globalSection
}

// Resolve merges the global section with the region's section (region wins)
// and validates the result. A region without its own section resolves from
// the global section alone. The document is not modified.
func (r *Resolver) Resolve(doc *properties.Document, region string) (*Resolved, error) {
	global, ok := doc.Section(r.globalSection)
	if !ok {
		return nil, &MissingSectionError{Section: r.globalSection, Source: doc.Source()}
	}

	regional, hasRegion := doc.Section(region)
	if !hasRegion {
		r.logger.Debug("no region section, using global defaults only",
			zap.String("region", region), zap.String("source", doc.Source()))
	}

	merged := make(map[string]string, len(global)+len(regional)+1)
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range regional {
		merged[k] = v
	}
	merged[TargetRegionKey] = region

	resolved := &Resolved{region: region, source: doc.Source(), values: merged}
	if err := r.rules.Validate(resolved, r.globalSection); err != nil {
		return nil, err
	}

	r.logger.Info("resolved deployment settings",
		zap.String("region", region),
		zap.String("source", doc.Source()),
		zap.Int("keys", resolved.Len()))
	return resolved, nil
}

// Resolve resolves region against doc using environmentSection as the global
// section and the default rules.
func Resolve(doc *properties.Document, environmentSection, region string) (*Resolved, error) {
	return NewResolver(WithGlobalSection(environmentSection)).Resolve(doc, region)
}
