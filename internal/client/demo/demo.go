// Package demo synthesizes local identities for demonstration logins and for
// network-failure fallback. Classification is deterministic: the same email
// always yields the same verdict and, for synthesized identities, the same ID.
package demo

import (
	"strings"

	"github.com/google/uuid"

	"github.com/careerai/careerai-go/internal/client/api"
	"github.com/careerai/careerai-go/internal/model"
)

// TokenPrefix marks locally generated opaque tokens. Demo tokens are not
// verifiable credentials and must never be sent to a real backend.
const TokenPrefix = "demo_token_"

// DefaultEmail is the identity used when a demo session has to be
// reconstructed without any cached data.
const DefaultEmail = "demo@example.com"

var patterns = []string{"demo", "test", "example"}

// knownUsers are the fixed demo accounts. Any password is accepted for them.
var knownUsers = map[string]api.Profile{
	"demo@example.com": newProfile("demo_job_seeker", "demo@example.com", "Demo", "Job Seeker", model.RoleJobSeeker,
		"Mid-level", "Remote", true, []string{"React", "Node.js", "JavaScript", "TypeScript", "Python"}),
	"recruiter@demo.com": newProfile("demo_recruiter", "recruiter@demo.com", "Demo", "Recruiter", model.RoleRecruiter,
		"Senior-level", "San Francisco, CA", false, []string{"Talent Acquisition", "HR Management", "Interviewing"}),
	"demo@jobseeker.com": newProfile("demo_job_seeker_2", "demo@jobseeker.com", "Demo", "JobSeeker", model.RoleJobSeeker,
		"3 years", "San Francisco, CA", true, []string{"JavaScript", "React", "Node.js", "Python"}),
	"demo@recruiter.com": newProfile("demo_recruiter_2", "demo@recruiter.com", "Demo", "Recruiter", model.RoleRecruiter,
		"Senior-level", "New York, NY", false, []string{"Talent Acquisition", "HR Management"}),
}

// IsDemoEmail reports whether the email should be satisfied locally without
// any network call.
func IsDemoEmail(email string) bool {
	lower := strings.ToLower(email)
	if _, ok := knownUsers[lower]; ok {
		return true
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsDemoToken reports whether a stored token is demo-shaped.
func IsDemoToken(token string) bool {
	return strings.HasPrefix(token, TokenPrefix)
}

// NewToken generates an opaque demo token.
func NewToken() string {
	return TokenPrefix + uuid.NewString()
}

// Identity returns the demo identity for an email: the fixed record for known
// demo accounts, otherwise one synthesized from the email. The ID is derived
// from the email so repeated calls agree.
func Identity(email string) api.Profile {
	lower := strings.ToLower(email)
	if user, ok := knownUsers[lower]; ok {
		return user
	}
	return synthesize(lower)
}

// DefaultIdentity is the stable fallback used when cached demo data is
// missing or corrupted.
func DefaultIdentity() api.Profile {
	return knownUsers[DefaultEmail]
}

func synthesize(email string) api.Profile {
	isRecruiter := strings.Contains(email, "recruiter")

	role := model.RoleJobSeeker
	lastName := "User"
	experience := "Mid-level"
	skills := []string{"JavaScript", "React", "Node.js"}
	if isRecruiter {
		role = model.RoleRecruiter
		lastName = "Recruiter"
		experience = "Senior-level"
		skills = []string{"Talent Acquisition", "HR Management"}
	}

	id := "demo_" + string(role) + "_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(email)).String()
	return newProfile(id, email, "Demo", lastName, role, experience, "Remote", !isRecruiter, skills)
}

func newProfile(id, email, first, last string, role model.Role, experience, location string, resume bool, skills []string) api.Profile {
	return api.Profile{
		UserResponse: model.UserResponse{
			ID:              id,
			Email:           email,
			FirstName:       first,
			LastName:        last,
			Role:            role,
			Location:        location,
			Experience:      experience,
			Skills:          skills,
			ResumeUploaded:  resume,
			ProfileComplete: true,
		},
		IsDemo: true,
	}
}
