package model

import "fmt"

// Role is the access level of a user.
type Role string

var (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Toggle returns the other role.
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// User is the identity returned by the backend.
type User struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName joins first and last name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Validate checks the fields every user payload must carry.
func (u User) Validate() error {
	if u.ID == 0 {
		return fmt.Errorf("user id is missing")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("user %d has unknown role %q", u.ID, u.Role)
	}
	return nil
}

// RegisterRequest creates an account together with its first household.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`

	HouseName   string      `json:"houseName"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Region      string      `json:"region,omitempty"`
	Country     string      `json:"country"`
	Members     int         `json:"members"`
	HeatingType HeatingType `json:"heatingType,omitempty"`
	AreaSqm     float64     `json:"areaSqm"`
	YearBuilt   int         `json:"yearBuilt"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}

// RefreshResponse is returned by token refresh.
type RefreshResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// UpdateProfileRequest changes profile fields; empty fields are left unchanged by the server.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// ChangePasswordRequest replaces the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// RoleChange is the body of an admin role update.
type RoleChange struct {
	Role Role `json:"role"`
}
