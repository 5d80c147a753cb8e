package models

// User is an account that can sign in to the dashboard. Role is a plain
// flag ("admin", "recruiter"); no further authorization model exists.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"-" yaml:"password"`
	Role     string `json:"role,omitempty" yaml:"role"`
	Avatar   string `json:"avatar,omitempty" yaml:"avatar"`
}
