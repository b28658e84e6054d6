package service

import (
	"errors"

	"ordercrm/internal/model"
)

var (
	ErrForbidden     = errors.New("operation is not allowed for this role")
	ErrOrderNotFound = errors.New("order not found")
)

// transitions holds, per role, the single allowed next status keyed by
// the order's current status. Exact match only: no skipping ahead and
// no moving backward.
var transitions = map[model.Role]map[string]string{
	model.RolePicker: {
		model.StatusPlaced:         model.StatusAwaitingSupply,
		model.StatusAwaitingSupply: model.StatusAssembly,
	},
	model.RoleCourier: {
		model.StatusAssembly: model.StatusDelivery,
		model.StatusDelivery: model.StatusCompleted,
	},
}

// Access decides what a role may do. It is a pure lookup with no
// dependencies so that handlers, services and tests share one policy.
type Access struct{}

func NewAccess() *Access {
	return &Access{}
}

// CanView reports whether the role may list orders. Viewing is open to
// everyone, including identities with no role assigned.
func (a *Access) CanView(model.Role) bool {
	return true
}

// CanCreate reports whether the role may place new orders.
func (a *Access) CanCreate(role model.Role) bool {
	return role == model.RoleManager || role == model.RoleAdmin
}

// CanChangeStatus reports whether the role participates in status
// changes at all. Admin changes are unconditional; picker and courier
// are further constrained by AllowedTransition.
func (a *Access) CanChangeStatus(role model.Role) bool {
	if role == model.RoleAdmin {
		return true
	}
	_, ok := transitions[role]
	return ok
}

// NextStatus returns the single status the role may move an order with
// the given current status to. Admin has no single next status; use
// AllowedTransition for admin checks.
func (a *Access) NextStatus(role model.Role, current string) (string, bool) {
	next, ok := transitions[role][current]
	return next, ok
}

// AllowedTransition reports whether the role may move an order from
// current to target. Admin may set any target.
func (a *Access) AllowedTransition(role model.Role, current, target string) bool {
	if role == model.RoleAdmin {
		return true
	}
	next, ok := transitions[role][current]
	return ok && next == target
}
