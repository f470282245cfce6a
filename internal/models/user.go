package models

type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleAdvocate Role = "advocate"
)

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
