// Package auth gates mutating operations on an operator allow list.
package auth

import "strings"

// Gate decides whether an operator identity may mutate shared state.
// Read paths never consult the gate.
type Gate interface {
	Authorized(identity string) bool
}

// AllowList authorizes the named operators, compared case-insensitively.
// An empty list leaves the gate open: access control is opt-in, and a
// single-operator deployment that never configures a list stays usable.
type AllowList struct {
	allowed map[string]struct{}
}

// NewAllowList builds a gate from operator names. Blank entries are
// dropped.
func NewAllowList(operators []string) *AllowList {
	allowed := make(map[string]struct{}, len(operators))
	for _, op := range operators {
		op = strings.ToLower(strings.TrimSpace(op))
		if op != "" {
			allowed[op] = struct{}{}
		}
	}
	return &AllowList{allowed: allowed}
}

func (g *AllowList) Authorized(identity string) bool {
	if len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[strings.ToLower(strings.TrimSpace(identity))]
	return ok
}
