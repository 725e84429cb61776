package authorizer

import (
	"fmt"
	"net"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

const defaultSubjectPrefix = "C=BE,ST=Brabant Wallon,L=La Hulpe,O=SWIFT,CN="

var (
	defaultIssuers = []string{
		"C=BE,O=GlobalSign nv-sa,CN=GlobalSign RSA OV SSL CA 2018",
	}
	defaultSubjects = []string{
		defaultSubjectPrefix + "sandbox.swift.com",
		defaultSubjectPrefix + "sandbox-test.swift.com",
		defaultSubjectPrefix + "sandbox-qa.swift.com",
		defaultSubjectPrefix + "sandbox-dev.swift.com",
	}
	defaultSourceIPs = []string{
		"35.189.89.201",
		"35.234.131.166",
		"35.241.130.95",
		"35.240.37.178",
		"23.194.131.216",
		"23.194.131.152",
	}
)

// AllowList holds the issuer DNs, subject DNs and source IPs that are
// authorized. It is built once and never modified, so it can be shared by
// concurrent invocations.
type AllowList struct {
	issuers   map[string]struct{}
	subjects  map[string]struct{}
	sourceIPs map[string]struct{}
}

// NewAllowList creates an allow list. Values are matched exactly.
func NewAllowList(issuers, subjects, sourceIPs []string) AllowList {
	return AllowList{
		issuers:   toSet(issuers),
		subjects:  toSet(subjects),
		sourceIPs: toSet(sourceIPs),
	}
}

// DefaultAllowList returns the compiled-in SWIFT sandbox allow list.
func DefaultAllowList() AllowList {
	return NewAllowList(defaultIssuers, defaultSubjects, defaultSourceIPs)
}

func toSet(values []string) map[string]struct{} {
	return lo.Associate(values, func(v string) (string, struct{}) { return v, struct{}{} })
}

func sorted(set map[string]struct{}) []string {
	out := lo.Keys(set)
	slices.Sort(out)
	return out
}

func (a AllowList) Issuers() []string   { return sorted(a.issuers) }
func (a AllowList) Subjects() []string  { return sorted(a.subjects) }
func (a AllowList) SourceIPs() []string { return sorted(a.sourceIPs) }

func (a AllowList) hasIssuer(dn string) bool {
	_, ok := a.issuers[dn]
	return ok
}

func (a AllowList) hasSubject(dn string) bool {
	_, ok := a.subjects[dn]
	return ok
}

func (a AllowList) hasSourceIP(ip string) bool {
	_, ok := a.sourceIPs[ip]
	return ok
}

// Validate checks that the allow list can ever authorize a request and that
// every source IP is a literal address.
func (a AllowList) Validate() error {
	var err error
	if len(a.issuers) == 0 {
		err = multierr.Append(err, fmt.Errorf("no allowed issuers"))
	}
	if len(a.subjects) == 0 {
		err = multierr.Append(err, fmt.Errorf("no allowed subjects"))
	}
	if len(a.sourceIPs) == 0 {
		err = multierr.Append(err, fmt.Errorf("no allowed source IPs"))
	}
	for _, ip := range a.SourceIPs() {
		if net.ParseIP(ip) == nil {
			err = multierr.Append(err, fmt.Errorf("invalid source IP %q", ip))
		}
	}
	return err
}
