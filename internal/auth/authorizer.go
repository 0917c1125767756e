package auth

import "portaldocs/internal/domain/models"

// Role names a privilege required for document operations.
type Role string

const (
	// RolePublisher may publish documents and promote revisions.
	RolePublisher Role = "publisher"
	// RoleAdmin implies every other role.
	RoleAdmin Role = "admin"
)

// Authorizer answers role checks for actors. The engine never inspects
// credentials; it consumes verified role claims only.
type Authorizer interface {
	HasRole(actor models.Actor, role Role) bool
}

// RoleAuthorizer implements Authorizer from the roles carried in the actor's
// verified claims. Admin satisfies any role check.
type RoleAuthorizer struct{}

// NewRoleAuthorizer creates a claim-based authorizer.
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

// HasRole reports whether the actor carries the role or the admin role.
func (a *RoleAuthorizer) HasRole(actor models.Actor, role Role) bool {
	return actor.HasRole(string(role)) || actor.HasRole(string(RoleAdmin))
}
