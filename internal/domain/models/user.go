// internal/domain/models/user.go
package models

// User is the acting party of a session. It is supplied by the auth layer
// and never changes for the lifetime of the session.
type User struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Role         Role   `json:"role" yaml:"role"`
	Organization string `json:"organization" yaml:"organization"`
}

// Participant is the other party of a conversation, interview or hire.
type Participant struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Avatar       string   `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Role         Role     `json:"role" yaml:"role"`
	Organization string   `json:"organization,omitempty" yaml:"organization,omitempty"`
	Headline     string   `json:"headline,omitempty" yaml:"headline,omitempty"`
	Skills       []string `json:"skills,omitempty" yaml:"skills,omitempty"`
}
