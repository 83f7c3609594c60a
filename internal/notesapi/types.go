package notesapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is a user's role inside their tenant.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole normalizes a role value. Unknown values fall back to member.
func ParseRole(value string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// Plan is a tenant's subscription plan.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// FreePlanNoteLimit is the note count at which free tenants stop creating notes.
const FreePlanNoteLimit = 3

// Tenant describes the organization a user belongs to.
//
// The backend sends either a bare tenant id or a descriptor object depending
// on the endpoint, so decoding accepts both shapes.
type Tenant struct {
	ID   string `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
	Name string `json:"name,omitempty"`
	Plan Plan   `json:"plan,omitempty"`
}

type tenantWire struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Plan    string `json:"plan"`
}

// UnmarshalJSON decodes a tenant id string or a tenant descriptor object.
func (t *Tenant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Tenant{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode tenant id: %w", err)
		}
		*t = Tenant{ID: strings.TrimSpace(id)}
		return nil
	}
	var wire tenantWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode tenant: %w", err)
	}
	id := strings.TrimSpace(wire.ID)
	if id == "" {
		id = strings.TrimSpace(wire.MongoID)
	}
	*t = Tenant{
		ID:   id,
		Slug: strings.TrimSpace(wire.Slug),
		Name: strings.TrimSpace(wire.Name),
		Plan: Plan(strings.ToLower(strings.TrimSpace(wire.Plan))),
	}
	return nil
}

// User is the authenticated identity and tenant context of a session.
type User struct {
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	UserID string `json:"userId"`
	Tenant Tenant `json:"tenant"`
}

// IsAdmin reports whether the user administers their tenant.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Note is one tenant note as returned by the backend.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// checkIdentity is the payload of GET /api/user/check.
type checkIdentity struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	ID       string `json:"_id"`
	TenantID Tenant `json:"tenantId"`
}

func (c checkIdentity) user() User {
	return User{
		Email:  strings.TrimSpace(c.Email),
		Role:   ParseRole(c.Role),
		UserID: strings.TrimSpace(c.ID),
		Tenant: c.TenantID,
	}
}

// loginIdentity is the payload of POST /api/user/login.
type loginIdentity struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	ID     string `json:"id"`
	Tenant Tenant `json:"tenant"`
}

func (l loginIdentity) user() User {
	return User{
		Email:  strings.TrimSpace(l.Email),
		Role:   ParseRole(l.Role),
		UserID: strings.TrimSpace(l.ID),
		Tenant: l.Tenant,
	}
}

type checkEnvelope struct {
	Success bool           `json:"success"`
	Data    *checkIdentity `json:"data"`
	Message string         `json:"message"`
}

type loginEnvelope struct {
	Data    *loginIdentity `json:"data"`
	Message string         `json:"message"`
}

type notesEnvelope struct {
	Data []Note `json:"data"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
