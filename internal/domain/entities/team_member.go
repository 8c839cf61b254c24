package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role represents the access level of a team member
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleRegular Role = "regular"
)

// FieldSpec describes the constraints of a single text field
type FieldSpec struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Required  bool   `json:"required"`
	MaxLength int    `json:"maxLength"`
}

// RoleChoice is a selectable role with its display label
type RoleChoice struct {
	Value Role   `json:"value"`
	Label string `json:"label"`
}

// MemberSchema is the static description of the team member record.
// Both the validator and the HTTP layer read from it.
type MemberSchema struct {
	FirstName      FieldSpec    `json:"firstName"`
	LastName       FieldSpec    `json:"lastName"`
	PhoneNumber    FieldSpec    `json:"phoneNumber"`
	Email          FieldSpec    `json:"email"`
	Role           FieldSpec    `json:"role"`
	RoleChoices    []RoleChoice `json:"roleChoices"`
	DefaultRole    Role         `json:"defaultRole"`
	PhoneMinDigits int          `json:"phoneMinDigits"`
	PhoneMaxDigits int          `json:"phoneMaxDigits"`
}

// TeamMemberSchema holds the canonical field constraints.
// PhoneMinDigits is 8 even though the length message says 10; see DESIGN.md.
var TeamMemberSchema = MemberSchema{
	FirstName:   FieldSpec{Name: "first_name", Label: "First name", Required: true, MaxLength: 100},
	LastName:    FieldSpec{Name: "last_name", Label: "Last name", Required: true, MaxLength: 100},
	PhoneNumber: FieldSpec{Name: "phone_number", Label: "Phone number", Required: true, MaxLength: 15},
	Email:       FieldSpec{Name: "email", Label: "Email", Required: true, MaxLength: 254},
	Role:        FieldSpec{Name: "role", Label: "Role", Required: false, MaxLength: 10},
	RoleChoices: []RoleChoice{
		{Value: RoleAdmin, Label: "Admin"},
		{Value: RoleRegular, Label: "Regular"},
	},
	DefaultRole:    RoleRegular,
	PhoneMinDigits: 8,
	PhoneMaxDigits: 15,
}

// IsValid reports whether the role is one of the schema choices
func (r Role) IsValid() bool {
	for _, choice := range TeamMemberSchema.RoleChoices {
		if choice.Value == r {
			return true
		}
	}
	return false
}

// TeamMember represents one organization member
type TeamMember struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// String renders the member as "first last (role)"
func (m TeamMember) String() string {
	return fmt.Sprintf("%s %s (%s)", m.FirstName, m.LastName, m.Role)
}

// MarshalJSON adds the display name next to the stored fields
func (m TeamMember) MarshalJSON() ([]byte, error) {
	type alias TeamMember
	return json.Marshal(struct {
		alias
		DisplayName string `json:"display_name"`
	}{
		alias:       alias(m),
		DisplayName: m.String(),
	})
}

// TeamMemberInput represents a full create/replace payload
type TeamMemberInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

// Normalize trims surrounding whitespace from every field
func (in *TeamMemberInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = Role(strings.TrimSpace(string(in.Role)))
}

// TeamMemberPatch represents a partial update; invalid (absent) fields are left untouched
type TeamMemberPatch struct {
	FirstName   null.String `json:"first_name"`
	LastName    null.String `json:"last_name"`
	PhoneNumber null.String `json:"phone_number"`
	Email       null.String `json:"email"`
	Role        null.String `json:"role"`
}

// IsEmpty reports whether no field was supplied
func (p TeamMemberPatch) IsEmpty() bool {
	return !p.FirstName.Valid && !p.LastName.Valid && !p.PhoneNumber.Valid && !p.Email.Valid && !p.Role.Valid
}

// ApplyTo copies the supplied fields onto the member
func (p TeamMemberPatch) ApplyTo(m *TeamMember) {
	if p.FirstName.Valid {
		m.FirstName = strings.TrimSpace(p.FirstName.String)
	}
	if p.LastName.Valid {
		m.LastName = strings.TrimSpace(p.LastName.String)
	}
	if p.PhoneNumber.Valid {
		m.PhoneNumber = strings.TrimSpace(p.PhoneNumber.String)
	}
	if p.Email.Valid {
		m.Email = strings.TrimSpace(p.Email.String)
	}
	if p.Role.Valid {
		m.Role = Role(strings.TrimSpace(p.Role.String))
	}
}

// TeamMemberFilter narrows list queries
type TeamMemberFilter struct {
	Search string
	Role   Role
}

// RoleCount is the number of members holding a role
type RoleCount struct {
	Role  Role  `json:"role"`
	Count int64 `json:"count"`
}
