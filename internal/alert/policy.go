package alert

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Policy controls repeated pulses while the heading stays inside the window.
type Policy int

const (
	// PolicyEvery pulses on every qualifying sample.
	PolicyEvery Policy = iota
	// PolicyEntry pulses only when the heading enters the window.
	PolicyEntry
	// PolicyCooldown pulses at most once per cooldown while inside.
	PolicyCooldown
)

// DefaultCooldown is the pulse gap used by PolicyCooldown unless configured.
const DefaultCooldown = 2 * time.Second

var policyNames = []string{"every", "entry", "cooldown"}

func (p Policy) String() string {
	if int(p) >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

// ParsePolicy parses a policy name as written in config and flags.
func ParsePolicy(s string) (Policy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return PolicyEvery, nil
	}
	for i, n := range policyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return PolicyEvery, errors.Errorf("unknown alert policy %q (want one of %s)", s, strings.Join(policyNames, ", "))
}
