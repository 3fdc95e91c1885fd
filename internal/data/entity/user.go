package entity

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	FirstName    string   `db:"first_name"`
	LastName     *string  `db:"last_name"`
	Age          *int     `db:"age"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
}
