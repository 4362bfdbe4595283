package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates account roles. The set is open: new roles are added as
// constants and recognized by ParseRole without schema changes.
type Role string

const (
	RoleUser Role = "USER"
)

var knownRoles = map[Role]struct{}{
	RoleUser: {},
}

// ParseRole maps a stored role string onto the known set.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := knownRoles[role]; !ok {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// Valid reports whether the role belongs to the known set.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// Authority returns the authorization-layer view of the role.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// Identity mirrors the persisted representation in the identities table.
// PasswordHash is always the output of the one-way hasher; the plaintext
// credential is never stored.
type Identity struct {
	ID               int64
	Name             string
	NaturalID        string
	Email            string
	Phone            *string
	PasswordHash     string
	Role             Role
	VerificationCode *string
	ResetToken       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPendingRecovery reports whether a recovery request is outstanding.
func (i Identity) HasPendingRecovery() bool {
	return i.ResetToken != nil && *i.ResetToken != ""
}

// Principal is the authenticated-identity view handed to the
// authorization layer. It never carries the credential hash.
type Principal struct {
	IdentityID  int64
	NaturalID   string
	Role        Role
	Authorities []string
}
