package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User mirrors a row in the users table. Timestamps are stored as formatted
// strings in the application's civil timezone, not as native time values.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
