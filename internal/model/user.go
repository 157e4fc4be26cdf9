package model

import "time"

// Role enumerates the account types CareerAI knows about.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// User is the canonical identity record. The password hash never leaves the
// server; UserResponse is the outward shape.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Role            Role
	Phone           string
	Location        string
	Experience      string
	Skills          []string
	ResumeUploaded  bool
	ProfileComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Response converts a User into its serializable form.
func (u *User) Response() UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		Phone:           u.Phone,
		Location:        u.Location,
		Experience:      u.Experience,
		Skills:          skills,
		ResumeUploaded:  u.ResumeUploaded,
		ProfileComplete: u.ProfileComplete,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// UserResponse is the identity shape safe for API responses.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            Role      `json:"role"`
	Phone           string    `json:"phone"`
	Location        string    `json:"location"`
	Experience      string    `json:"experience"`
	Skills          []string  `json:"skills"`
	ResumeUploaded  bool      `json:"resume_uploaded"`
	ProfileComplete bool      `json:"profile_complete"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RegisterRequest is the POST /api/auth/register body.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the POST /api/auth/refresh-token body.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest is the POST /api/auth/forgot-password body.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the POST /api/auth/reset-password body.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// AuthResponse carries a token pair and the authenticated identity.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshResponse carries the freshly minted access token.
type RefreshResponse struct {
	Token string `json:"token"`
}
