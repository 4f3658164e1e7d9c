package models

// Roles known to the system. Viewer is the sign-up default; settings
// writes are restricted to Admin and Manager.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`    // don’t expose hash
	Role         string `json:"role"` // admin | manager | viewer
}
