package casing

import "github.com/misha-mad/vercel-rpc-sub000/errors"

// Policy is the global field naming policy from [codegen.naming] fields.
// It applies only when neither a field rename nor a container rename_all does.
type Policy string

const (
	PolicyPreserve  Policy = "preserve"
	PolicyCamelCase Policy = "camelCase"
)

// ParsePolicy validates a configured naming policy. Empty means preserve.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyPreserve:
		return PolicyPreserve, nil
	case PolicyCamelCase:
		return PolicyCamelCase, nil
	}
	return PolicyPreserve, errors.NewInvalidConfigError("unknown field naming policy %q (want %q or %q)",
		s, PolicyPreserve, PolicyCamelCase)
}

// Apply renames a field name under the policy.
func (p Policy) Apply(name string) string {
	if p == PolicyCamelCase {
		return ToCamelCase(name)
	}
	return name
}
