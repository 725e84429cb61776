package settings

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/trufnetwork/idmz-gateway/internal/properties"
)

var (
	// ErrFileNotFound is returned when the profile's properties file does not exist.
	ErrFileNotFound = properties.ErrFileNotFound

	ErrMissingSection      = errors.New("missing section")
	ErrMissingRequiredKeys = errors.New("missing required configuration values")
	ErrRegionMismatch      = errors.New("region mismatch")
	ErrNoTargetRegions     = errors.New("no target regions")
	ErrInvalidValue        = errors.New("invalid configuration value")
)

// MissingSectionError reports that the global section is absent.
type MissingSectionError struct {
	Section string
	Source  string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("section [%s] is missing in %s", e.Section, sourceOrDefault(e.Source))
}

func (e *MissingSectionError) Is(target error) bool {
	return target == ErrMissingSection
}

// MissingRequiredKeysError lists every required key that was absent or empty
// after the merge.
type MissingRequiredKeysError struct {
	Region  string
	Section string
	Source  string
	Keys    []string
	Details []string
}

func (e *MissingRequiredKeysError) Error() string {
	return fmt.Sprintf(
		"missing required configuration values for target region '%s' in %s; define them in section '[%s]' or as defaults in '[%s]': %s",
		e.Region, sourceOrDefault(e.Source), e.Region, e.Section, strings.Join(e.Details, ", "),
	)
}

func (e *MissingRequiredKeysError) Is(target error) bool {
	return target == ErrMissingRequiredKeys
}

func newMissingRequiredKeysError(r *Resolved, section string, missing []RequiredKey) *MissingRequiredKeysError {
	return &MissingRequiredKeysError{
		Region:  r.Region(),
		Section: section,
		Source:  r.Source(),
		Keys:    lo.Map(missing, func(k RequiredKey, _ int) string { return k.Name }),
		Details: lo.Map(missing, func(k RequiredKey, _ int) string { return k.String() }),
	}
}

// RegionMismatchError reports that stack_deploy_region disagrees with the
// region being resolved.
type RegionMismatchError struct {
	Configured string
	Target     string
}

func (e *RegionMismatchError) Error() string {
	return fmt.Sprintf(
		"configuration inconsistency for target region '%s': %s is '%s' but must match the target region '%s'",
		e.Target, KeyStackDeployRegion, e.Configured, e.Target,
	)
}

func (e *RegionMismatchError) Is(target error) bool {
	return target == ErrRegionMismatch
}

// InvalidValueError reports a value that does not fit its declared type.
type InvalidValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func sourceOrDefault(source string) string {
	if source == "" {
		return "properties document"
	}
	return source
}
