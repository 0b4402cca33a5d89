package service

import (
	"github.com/betstack/bet-engine/internal/models"
	"github.com/google/uuid"
)

// Action names an operator-gated operation.
type Action string

const (
	ActionSettleMatch  Action = "settle_match"
	ActionRecordResult Action = "record_result"
)

// Authorizer decides whether a principal may perform an action. The policy is
// injected so deployments can swap the role check for their own lookup.
type Authorizer interface {
	Authorize(principal models.Principal, action Action) error
}

// RoleAuthorizer grants operator-gated actions to the operator role claim
// supplied by the external identity provider.
type RoleAuthorizer struct{}

// NewRoleAuthorizer creates the default role-claim authorizer
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

// Authorize returns ErrUnauthenticated for anonymous principals and
// ErrPermissionDenied for non-operators
func (a *RoleAuthorizer) Authorize(principal models.Principal, action Action) error {
	if principal.UserID == uuid.Nil {
		return models.ErrUnauthenticated
	}
	switch action {
	case ActionSettleMatch, ActionRecordResult:
		if principal.Role != models.RoleOperator {
			return models.ErrPermissionDenied
		}
	}
	return nil
}
