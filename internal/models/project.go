package models

// Project enumerates the sub-teams permitted to operate within it.
// Projects are seed data; the portal defines no create or delete
// operation for them.
type Project struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

// HasTeam reports whether team is one of the project's teams.
func (p *Project) HasTeam(team string) bool {
	for _, t := range p.Teams {
		if t == team {
			return true
		}
	}
	return false
}
