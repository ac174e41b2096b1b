// Package perm defines the permission tiers the event workflow depends on
// and a config-backed checker. The workflow only ever calls Has; how grants
// are decided belongs to the host environment.
package perm

import "strings"

// Tier is a named permission level.
type Tier string

const (
	// TierBuild is the base access needed to list, create, edit, and
	// delete event bindings at all.
	TierBuild Tier = "build"
	// TierBypassValidation marks trusted authors whose saves become
	// active immediately.
	TierBypassValidation Tier = "bypass_validation"
	// TierValidate marks validators: they see validity in listings, can
	// list the pending queue, and can accept pending bindings.
	TierValidate Tier = "validate"
)

// Checker answers whether a user holds a tier.
type Checker interface {
	Has(user string, tier Tier) bool
}

// Func adapts a plain function to Checker.
type Func func(user string, tier Tier) bool

func (f Func) Has(user string, tier Tier) bool { return f(user, tier) }

// Grants is a static Checker built from per-tier user lists. A "*" entry
// grants the tier to everyone. User names match case-insensitively.
type Grants map[Tier][]string

func (g Grants) Has(user string, tier Tier) bool {
	for _, name := range g[tier] {
		if name == "*" || strings.EqualFold(name, user) {
			return true
		}
	}
	return false
}
