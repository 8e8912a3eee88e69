// Package authz implements the ownership check gating mutating operations.
package authz

import "errors"

// ErrForbidden is returned when the identity does not own the resource.
var ErrForbidden = errors.New("forbidden")

// Action is a mutating operation on an owned resource.
type Action string

// Actions gated by ownership. Reads are public and never pass through here.
const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize allows the action iff the identity owns the resource.
// It never silently no-ops: a mismatch is always ErrForbidden.
func Authorize(identityID, resourceOwnerID string, action Action) error {
	if identityID == "" || identityID != resourceOwnerID {
		return ErrForbidden
	}
	switch action {
	case ActionUpdate, ActionDelete:
		return nil
	default:
		return ErrForbidden
	}
}
