package model

// Role is a static capability class assigned to a chat identity.
type Role string

const (
	RoleManager Role = "manager"
	RolePicker  Role = "picker"
	RoleCourier Role = "courier"
	RoleAdmin   Role = "admin"

	// RoleNone marks an identity with no assignment. Viewing is still
	// allowed; creation and status changes are not.
	RoleNone Role = ""
)
