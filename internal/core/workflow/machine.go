package workflow

import (
	"sort"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
)

// Actor describes who is attempting a transition: their organization role and
// whether they are the record's original requester.
type Actor struct {
	Role        domain.UserOrganizationRole
	IsRequester bool
}

// Rule describes one legal transition out of a status. Roles lists every role
// allowed to perform it (RoleAdmin is always listed explicitly, never implied).
// RequesterOnly rules ignore Roles: only the record's requester may perform
// them, regardless of role.
type Rule[S ~string] struct {
	To             S
	Roles          []domain.UserOrganizationRole
	RequesterOnly  bool
	RequiresNotes  bool // denial/rejection: reviewer notes mandatory
	RequiresAmount bool // allocation approval: approved amount consulted
	Notify         bool // queue a notification to the requester on commit
}

// Machine is a transition table for one request kind. It is pure decision
// logic: it never touches storage and has no side effects. All legality
// checks for a kind live here; callers must not re-implement the table.
type Machine[S ~string] struct {
	kind  domain.RequestKind
	table map[S]map[domain.ReviewAction]Rule[S]
}

// NewMachine builds a machine from a transition table.
func NewMachine[S ~string](kind domain.RequestKind, table map[S]map[domain.ReviewAction]Rule[S]) *Machine[S] {
	return &Machine[S]{kind: kind, table: table}
}

// Kind returns the request kind this machine governs.
func (m *Machine[S]) Kind() domain.RequestKind {
	return m.kind
}

// Next resolves the rule for (from, action) under the given actor.
// It returns ErrInvalidTransition when the pair is not in the table and
// ErrForbidden when it is but the actor may not perform it. Re-issuing an
// already-applied terminal transition therefore fails ErrInvalidTransition
// rather than silently succeeding twice.
func (m *Machine[S]) Next(from S, action domain.ReviewAction, actor Actor) (Rule[S], error) {
	var zero Rule[S]
	rules, ok := m.table[from]
	if !ok {
		return zero, apperrors.ErrInvalidTransition
	}
	rule, ok := rules[action]
	if !ok {
		return zero, apperrors.ErrInvalidTransition
	}
	if !ruleAllows(rule, actor) {
		return zero, apperrors.ErrForbidden
	}
	return rule, nil
}

// Terminal reports whether a status has no outgoing transitions at all.
func (m *Machine[S]) Terminal(status S) bool {
	return len(m.table[status]) == 0
}

// LegalActions returns the actions the actor may take from the given status,
// sorted for deterministic output. The UI uses this to gray out buttons.
func (m *Machine[S]) LegalActions(from S, actor Actor) []domain.ReviewAction {
	rules, ok := m.table[from]
	if !ok {
		return nil
	}
	actions := make([]domain.ReviewAction, 0, len(rules))
	for action, rule := range rules {
		if ruleAllows(rule, actor) {
			actions = append(actions, action)
		}
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

func ruleAllows[S ~string](rule Rule[S], actor Actor) bool {
	if rule.RequesterOnly {
		return actor.IsRequester
	}
	for _, role := range rule.Roles {
		if role == actor.Role {
			return true
		}
	}
	return false
}
