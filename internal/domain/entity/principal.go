package entity

import "github.com/google/uuid"

// PrincipalKind tags the variant of a Principal
type PrincipalKind int

const (
	// PrincipalAnonymous is the zero value: no identity attached
	PrincipalAnonymous PrincipalKind = iota
	// PrincipalUser is backed by a users row
	PrincipalUser
	// PrincipalSuperAdmin is the configured super administrator with no users row
	PrincipalSuperAdmin
)

// Principal is the acting identity of a request. Every authorization decision
// goes through Role, IsAdmin and IsSuperAdmin instead of ad-hoc flags.
type Principal struct {
	Kind     PrincipalKind
	ID       uuid.UUID
	Username string
	Email    string
	role     Role
}

// AuthenticatedPrincipal wraps a persisted user
func AuthenticatedPrincipal(userID uuid.UUID, username, email string, role Role) Principal {
	return Principal{Kind: PrincipalUser, ID: userID, Username: username, Email: email, role: role}
}

// SuperAdminPrincipal is the synthetic administrator configured outside the database
func SuperAdminPrincipal(username string) Principal {
	return Principal{Kind: PrincipalSuperAdmin, Username: username, role: RoleAdmin}
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) IsAuthenticated() bool {
	return p.Kind != PrincipalAnonymous
}

func (p Principal) IsAdmin() bool {
	return p.Kind == PrincipalSuperAdmin || p.Kind == PrincipalUser && p.role == RoleAdmin
}

func (p Principal) IsSuperAdmin() bool {
	return p.Kind == PrincipalSuperAdmin
}

// UserID returns the users row id; false for the synthetic super admin
func (p Principal) UserID() (uuid.UUID, bool) {
	if p.Kind != PrincipalUser {
		return uuid.Nil, false
	}
	return p.ID, true
}

// ActorID returns the user id for audit records, nil when there is no users row
func (p Principal) ActorID() *uuid.UUID {
	if id, ok := p.UserID(); ok {
		return &id
	}
	return nil
}

// Is reports whether the principal is the given user
func (p Principal) Is(userID uuid.UUID) bool {
	id, ok := p.UserID()
	return ok && id == userID
}

// HasRole reports whether the principal acts with any of roles
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.role == r {
			return true
		}
	}
	return false
}
