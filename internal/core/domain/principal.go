package domain

import "strings"

// RolePrefix marks the role entry inside a token's scope claim.
const RolePrefix = "ROLE_"

// Role names seeded at startup.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Principal is the authenticated caller, resolved from a verified token.
// It is passed explicitly into core operations; there is no ambient
// security context.
type Principal struct {
	Email       string
	Role        string
	Permissions map[string]struct{}
	TokenID     string
}

// PrincipalFromScope rebuilds a Principal from a token's subject and
// space-separated scope claim. Authority strings are used verbatim; the
// single ROLE_-prefixed entry carries the role name.
func PrincipalFromScope(email, scope, tokenID string) *Principal {
	p := &Principal{
		Email:       email,
		Permissions: make(map[string]struct{}),
		TokenID:     tokenID,
	}
	for _, authority := range strings.Fields(scope) {
		if strings.HasPrefix(authority, RolePrefix) {
			p.Role = strings.TrimPrefix(authority, RolePrefix)
			continue
		}
		p.Permissions[authority] = struct{}{}
	}
	return p
}

// IsAdmin reports whether the caller carries the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasPermission reports whether the caller carries the named permission.
func (p *Principal) HasPermission(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Permissions[name]
	return ok
}
