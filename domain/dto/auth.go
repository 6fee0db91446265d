package dto

import "strings"

// bcrypt อ่านได้แค่ 72 bytes; validator max นับเป็นตัวอักษร
const MaxPasswordBytes = 72

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Normalize trims whitespace so that "  " counts as missing
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// PasswordTooLong reports a password bcrypt would refuse to hash
func (r *RegisterRequest) PasswordTooLong() bool {
	return len(r.Password) > MaxPasswordBytes
}

// RegisterValidationMessages maps "Field.tag" (or "tag") to the message returned to the client
var RegisterValidationMessages = map[string]string{
	"required":     "Please fill all fields",
	"Email.email":  "Please provide a valid email",
	"Password.min": "Password must be at least 6 characters",
	"Password.max": "Password must be at most 72 characters",
	"Name.max":     "Name is too long",
	"Email.max":    "Email is too long",
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

var LoginValidationMessages = map[string]string{
	"required": "Please fill all fields",
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
