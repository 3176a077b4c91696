package models

import (
	"strings"
	"time"
)

// CreateUserRequest is the body accepted by the user creation endpoint.
// Either username or name identifies the user.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,emailfmt"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,phonefmt"`
	Department string `json:"department,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Normalize trims fields, falls back from name to username and strips phone separators
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	if r.Username == "" {
		r.Username = r.Name
	}
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = NormalizePhone(r.Phone)
	r.Department = strings.TrimSpace(r.Department)
}

// Validate checks the request after normalization
func (r *CreateUserRequest) Validate() error {
	return ValidateStruct(r)
}

// ToRecord builds the user record inserted on creation
func (r *CreateUserRequest) ToRecord(id string, now time.Time) Record {
	rec := NewRecord(id, RecordTypeUser, StatusActive, now)
	rec["username"] = r.Username
	rec["email"] = r.Email
	rec["updated_at"] = FormatTimestamp(now)
	if r.Name != "" {
		rec["name"] = r.Name
	}
	if r.Phone != "" {
		rec["phone"] = r.Phone
	}
	if r.Department != "" {
		rec["department"] = r.Department
	}
	return rec
}
