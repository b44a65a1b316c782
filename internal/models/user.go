package models

// User roles ordered by privilege. The ordering is not a strict total
// order for every action: a team_lead's extra power is scoped to their
// own team.
const (
	RoleMember      = "member"
	RoleTeamLead    = "team_lead"
	RoleProjectLead = "project_lead"
	RoleAdmin       = "admin"
	RoleSuperadmin  = "superadmin"
)

// Roles lists every valid role, in privilege order.
var Roles = []string{RoleMember, RoleTeamLead, RoleProjectLead, RoleAdmin, RoleSuperadmin}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleAssignment is one entry in a user's assignment history.
type RoleAssignment struct {
	Role    string `json:"role"`
	Team    string `json:"team"`
	Project string `json:"project"`
	PIN     string `json:"pin"`
}

// User represents a portal user. PIN is stored and compared in
// plaintext; this matches the persisted data format and is a known
// weakness, not an oversight.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Team    string `json:"team,omitempty"`
	Project string `json:"project,omitempty"`
	PIN     string `json:"pin"`
	// Roles is the append-only history of assignments. Entries are
	// de-duplicated by (role, team, project) before appending.
	Roles []RoleAssignment `json:"roles,omitempty"`
}

// IsAdmin reports whether the user holds admin or superadmin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

// Sanitized returns a copy of the user without the PIN, for API
// responses that are not admin-facing.
func (u *User) Sanitized() User {
	out := *u
	out.PIN = ""
	out.Roles = nil
	return out
}
