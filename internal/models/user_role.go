package models

import "fmt"

type UserRoleType string

const (
	UserRoleAgent      UserRoleType = "agent"
	UserRoleContractor UserRoleType = "contractor"
)

// ParseUserRole converts the "role" JWT claim to the enum.
func ParseUserRole(s string) (UserRoleType, error) {
	switch UserRoleType(s) {
	case UserRoleAgent, UserRoleContractor:
		return UserRoleType(s), nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}
