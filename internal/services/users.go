package services

import (
	"strings"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
)

// AssignableProjects is the fixed catalog of project labels offered by
// the assigning flow.
var AssignableProjects = []string{
	"Project 1", "Project 2", "Project 3", "Project 4", "Project 5",
}

// AssignableTeams is the fixed catalog of team names offered by the
// assigning flow.
var AssignableTeams = []string{
	"Design",
	"Separation",
	"Mechanism",
	"Manufacturing/Methods",
	"Tooling",
	"PPC",
	"Program",
	"Quality",
	"Purchases & Stores",
	"Finance",
	"Configuration",
}

// UserService covers the admin-facing user operations: assignment,
// removal and PIN reset. Users are created by seed data, never through
// the API.
type UserService struct {
	records *store.RecordStore
}

func NewUserService(records *store.RecordStore) *UserService {
	return &UserService{records: records}
}

type AssignRequest struct {
	Role    string `json:"role" binding:"required"`
	Team    string `json:"team"`
	Project string `json:"project"`
	PIN     string `json:"pin"`
}

// List returns all user records, including PINs; callers gate this
// behind the admin policy.
func (s *UserService) List() ([]models.User, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// Assign upserts role, team, project and optionally PIN on the
// canonical user record and appends the assignment to the user's
// history, de-duplicated by (role, team, project).
func (s *UserService) Assign(id int, req *AssignRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewValidation("unknown role: " + req.Role)
	}

	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	u := findUser(doc.Users, id)
	if u == nil {
		return nil, response.NewNotFound("user not found")
	}

	pin := strings.TrimSpace(req.PIN)
	entry := models.RoleAssignment{
		Role:    req.Role,
		Team:    req.Team,
		Project: req.Project,
		PIN:     pin,
	}
	if entry.PIN == "" {
		entry.PIN = u.PIN
	}
	if !hasAssignment(u.Roles, entry) {
		u.Roles = append(u.Roles, entry)
	}

	u.Role = req.Role
	u.Team = req.Team
	u.Project = req.Project
	if pin != "" {
		u.PIN = pin
	}

	if err := s.records.Save(doc); err != nil {
		return nil, err
	}
	out := *u
	return &out, nil
}

// Remove deletes a user account. Policy restricts this to superadmin.
func (s *UserService) Remove(id int) error {
	doc, err := s.records.Load()
	if err != nil {
		return err
	}

	kept := doc.Users[:0]
	found := false
	for _, u := range doc.Users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return response.NewNotFound("user not found")
	}
	doc.Users = kept
	return s.records.Save(doc)
}

// ResetPIN sets the user's PIN back to "0000".
func (s *UserService) ResetPIN(id int) (*models.User, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	u := findUser(doc.Users, id)
	if u == nil {
		return nil, response.NewNotFound("user not found")
	}
	u.PIN = "0000"
	if err := s.records.Save(doc); err != nil {
		return nil, err
	}
	out := *u
	return &out, nil
}

func findUser(users []models.User, id int) *models.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

func hasAssignment(history []models.RoleAssignment, entry models.RoleAssignment) bool {
	for _, r := range history {
		if r.Role == entry.Role && r.Team == entry.Team && r.Project == entry.Project {
			return true
		}
	}
	return false
}
