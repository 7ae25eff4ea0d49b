package user

import "time"

type Role string

const (
	RoleBuyer   Role = "BUYER"
	RoleSeller  Role = "SELLER"
	RoleSupport Role = "SUPPORT"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID        uint
	Email     string
	Password  string
	Username  string
	Role      Role
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
