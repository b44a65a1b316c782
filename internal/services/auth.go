package services

import (
	"strings"
	"time"

	"github.com/bomspace/backend/internal/config"
	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/internal/utils"
	"github.com/bomspace/backend/pkg/response"
)

// AuthService authenticates users against the document store by
// (name, role, PIN) and issues session tokens.
type AuthService struct {
	records *store.RecordStore
	jwtCfg  *config.JWTConfig
}

func NewAuthService(records *store.RecordStore, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{records: records, jwtCfg: jwtCfg}
}

type LoginRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token    string      `json:"token"`
	User     models.User `json:"user"`
	ExpireAt *time.Time  `json:"expire_at,omitempty"`
}

// Login matches name case-insensitively and role exactly against a
// stored user, then compares the PIN as a plaintext string. The
// plaintext compare matches the persisted data format and is a known
// weakness of the portal.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	var user *models.User
	for i := range doc.Users {
		u := &doc.Users[i]
		if strings.EqualFold(u.Name, name) && u.Role == req.Role {
			user = u
			break
		}
	}
	if user == nil {
		return nil, response.NewUnauthorized("user not found for this role")
	}

	if strings.TrimSpace(req.PIN) != user.PIN {
		return nil, response.NewUnauthorized("invalid PIN")
	}

	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, user.Team, s.jwtCfg.ExpireHour)
	if err != nil {
		return nil, err
	}

	resp := &LoginResponse{Token: token, User: user.Sanitized()}
	if s.jwtCfg.ExpireHour > 0 {
		t := time.Now().Add(time.Duration(s.jwtCfg.ExpireHour) * time.Hour)
		resp.ExpireAt = &t
	}
	return resp, nil
}

// GetUserByID returns the stored user record for id.
func (s *AuthService) GetUserByID(id int) (*models.User, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			out := doc.Users[i]
			return &out, nil
		}
	}
	return nil, response.NewNotFound("user not found")
}

// CreateSuperadminIfNotExists seeds a superadmin account when the
// users collection is empty, so a fresh deployment can log in and
// assign everyone else.
func (s *AuthService) CreateSuperadminIfNotExists(name, pin string) error {
	doc, err := s.records.Load()
	if err != nil {
		return err
	}
	if len(doc.Users) > 0 {
		return nil
	}
	doc.Users = append(doc.Users, models.User{
		ID:   1,
		Name: name,
		Role: models.RoleSuperadmin,
		PIN:  pin,
	})
	return s.records.Save(doc)
}
