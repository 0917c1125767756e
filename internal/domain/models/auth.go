package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure issued by the portal's identity
// provider. Roles are carried as a plain string list.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// ActorID returns the actor identifier from the subject claim.
func (c *Claims) ActorID() string {
	return c.Subject
}

// Actor is the authenticated principal acting on a document. The engine
// never inspects credentials; it only consumes the verified identity.
type Actor struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
