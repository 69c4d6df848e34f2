package models

const RoleAdmin = "admin"

// User is the record returned by /auth/login and cached as the session.
type User struct {
	ID       ID     `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Identifier is the value sent in the x-user-id header: the username, or
// failing that the id, or the display name.
func (u User) Identifier() string {
	switch {
	case u.Username != "":
		return u.Username
	case !u.ID.IsZero():
		return u.ID.String()
	default:
		return u.Name
	}
}

// DisplayName is used in greetings.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.Username
	}
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
