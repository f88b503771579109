package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of roles a user can hold. The zero value is not a
// valid role.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

const rolePrefix = "ROLE_"

var roleNames = map[Role]string{
	RoleUser:  "USER",
	RoleAdmin: "ADMIN",
}

// ParseRole accepts "admin", "ADMIN" or "ROLE_ADMIN" (and the USER
// equivalents). Anything else is ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, rolePrefix)
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// String returns the wire form, e.g. "ROLE_ADMIN".
func (r Role) String() string {
	n, ok := roleNames[r]
	if !ok {
		return "ROLE_UNKNOWN"
	}
	return rolePrefix + n
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
