package entity

// Role is ordered by privilege: a smaller value can do everything a larger one can.
type Role int

const (
	RoleAdmin    Role = 0
	RolePaidUser Role = 1
	RoleUser     Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RolePaidUser:
		return "paidUser"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	Role         Role   `db:"role"`
}
