package models

import "fmt"

// AccessLevel grades what a member may do on a project. The levels are
// named sets checked by membership, not ranks on a ladder; the policy
// table decides which sets unlock which actions.
type AccessLevel string

const (
	AccessOwner AccessLevel = "owner"
	AccessAdmin AccessLevel = "admin"
	AccessWrite AccessLevel = "write"
	AccessRead  AccessLevel = "read"
)

// AccessLevels lists every valid level.
var AccessLevels = []AccessLevel{AccessOwner, AccessAdmin, AccessWrite, AccessRead}

// GrantableLevels lists the levels that can be handed out when sharing a
// project. Ownership is assigned once at creation and never granted.
var GrantableLevels = []AccessLevel{AccessAdmin, AccessWrite, AccessRead}

func (l AccessLevel) Valid() bool {
	for _, level := range AccessLevels {
		if l == level {
			return true
		}
	}
	return false
}

func (l AccessLevel) Grantable() bool {
	for _, level := range GrantableLevels {
		if l == level {
			return true
		}
	}
	return false
}

// ParseAccessLevel validates a wire-format level string.
func ParseAccessLevel(s string) (AccessLevel, error) {
	level := AccessLevel(s)
	if !level.Valid() {
		return "", fmt.Errorf("invalid access level %q", s)
	}
	return level, nil
}
