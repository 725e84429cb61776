package settings

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Resolved is the merged configuration of one profile for one target region.
// It has no mutating methods and is safe for concurrent reads.
type Resolved struct {
	region string
	source string
	values map[string]string
}

// Region returns the target region this configuration was resolved for.
func (r *Resolved) Region() string {
	return r.region
}

// Source returns the name of the document the configuration came from.
func (r *Resolved) Source() string {
	return r.source
}

// Get returns the value for key and whether it is present.
func (r *Resolved) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "" when absent.
func (r *Resolved) Value(key string) string {
	return r.values[key]
}

// Keys returns all keys in sorted order.
func (r *Resolved) Keys() []string {
	keys := lo.Keys(r.values)
	slices.Sort(keys)
	return keys
}

// Map returns a copy of the merged key/value pairs.
func (r *Resolved) Map() map[string]string {
	return lo.Assign(r.values)
}

// Len returns the number of keys, including current_target_region.
func (r *Resolved) Len() int {
	return len(r.values)
}
