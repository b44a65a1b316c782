package services

import "github.com/bomspace/backend/internal/models"

// Authorization policy: pure decision functions mapping (actor, action,
// resource) to permit/deny. Every mutating handler consults these
// before touching the stores.
//
// The final-BOM rules are asymmetric on purpose: uploading a final BOM
// is open to project_lead exactly, while editing or removing one is
// open to project_lead, admin and superadmin. This reproduces the
// portal's observed behavior.

// CanViewProject reports whether the actor may see a project and its
// uploads. Admins see every project; a teamless actor sees all; anyone
// else must belong to one of the project's teams.
func CanViewProject(actor *models.User, p *models.Project) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.Team == "" {
		return true
	}
	return p.HasTeam(actor.Team)
}

// CanViewUpload reports whether the actor may read an upload's bytes.
// Final BOMs are visible to any authenticated user; otherwise the
// uploader and any member of the project's teams qualify.
func CanViewUpload(actor *models.User, u *models.Upload, p *models.Project) bool {
	if u.Final {
		return true
	}
	if actor.Name == u.UploadedBy {
		return true
	}
	return CanViewProject(actor, p)
}

// CanManageUpload reports whether the actor may replace or remove an
// upload. Final uploads use the stricter final-BOM rule; for the rest,
// the uploader, the team_lead of the upload's team, and any
// project_lead/admin/superadmin qualify.
func CanManageUpload(actor *models.User, u *models.Upload) bool {
	if u.Final {
		return CanManageFinal(actor)
	}
	if actor.Role == models.RoleProjectLead || actor.IsAdmin() {
		return true
	}
	if actor.Role == models.RoleTeamLead && actor.Team == u.Team {
		return true
	}
	return actor.Name == u.UploadedBy
}

// CanManageFinal reports whether the actor may replace or remove a
// final BOM.
func CanManageFinal(actor *models.User) bool {
	return actor.Role == models.RoleProjectLead || actor.IsAdmin()
}

// CanUploadFinal reports whether the actor may upload a new final BOM.
// project_lead only; admins inherit edit/remove but not this.
func CanUploadFinal(actor *models.User) bool {
	return actor.Role == models.RoleProjectLead
}

// CanUseTeam reports whether the actor may operate (message, list) on
// behalf of a team. team_lead is pinned to their own team; everyone
// else picks among the teams of a project they can see.
func CanUseTeam(actor *models.User, team string) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.Role == models.RoleTeamLead {
		return actor.Team == team
	}
	return true
}

// CanAssignRoles reports whether the actor may reassign user roles.
func CanAssignRoles(actor *models.User) bool {
	return actor.IsAdmin()
}

// CanRemoveUser reports whether the actor may remove a user account.
// Superadmin only.
func CanRemoveUser(actor *models.User) bool {
	return actor.Role == models.RoleSuperadmin
}

// CanResetPIN reports whether the actor may reset a user's PIN.
func CanResetPIN(actor *models.User) bool {
	return actor.IsAdmin()
}
