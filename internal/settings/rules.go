package settings

import (
	"fmt"

	"github.com/samber/lo"
)

// Rule is a validation applied to a merged configuration.
type Rule interface {
	Name() string
	Validate(r *Resolved, globalSection string) error
}

// RuleSet holds a collection of rules and applies them in order, stopping at
// the first failure.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a rule set.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// DefaultRules checks the required keys first and region consistency second,
// so a missing stack_deploy_region is reported as missing rather than as a
// mismatch.
func DefaultRules() *RuleSet {
	return NewRuleSet(
		&RequiredKeysRule{Keys: RequiredKeys},
		&RegionMatchRule{},
	)
}

// Validate applies all rules to r.
func (rs *RuleSet) Validate(r *Resolved, globalSection string) error {
	for _, rule := range rs.rules {
		if err := rule.Validate(r, globalSection); err != nil {
			return fmt.Errorf("%s validation failed: %w", rule.Name(), err)
		}
	}
	return nil
}

// AddRule appends a rule to the set.
func (rs *RuleSet) AddRule(rule Rule) {
	rs.rules = append(rs.rules, rule)
}

// Rules returns a copy of the rules in the set.
func (rs *RuleSet) Rules() []Rule {
	result := make([]Rule, len(rs.rules))
	copy(result, rs.rules)
	return result
}

// RequiredKeysRule fails when any of Keys is absent or empty, naming all of
// them at once.
type RequiredKeysRule struct {
	Keys []RequiredKey
}

func (*RequiredKeysRule) Name() string { return "required-keys" }

func (rule *RequiredKeysRule) Validate(r *Resolved, globalSection string) error {
	missing := lo.Filter(rule.Keys, func(k RequiredKey, _ int) bool {
		return r.Value(k.Name) == ""
	})
	if len(missing) > 0 {
		return newMissingRequiredKeysError(r, globalSection, missing)
	}
	return nil
}

// RegionMatchRule fails when stack_deploy_region is not the target region.
type RegionMatchRule struct{}

func (*RegionMatchRule) Name() string { return "region-match" }

func (*RegionMatchRule) Validate(r *Resolved, _ string) error {
	configured := r.Value(KeyStackDeployRegion)
	if configured != r.Region() {
		return &RegionMismatchError{Configured: configured, Target: r.Region()}
	}
	return nil
}
