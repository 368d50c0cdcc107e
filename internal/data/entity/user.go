package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleOwner UserRole = "owner"
)

type User struct {
	Base
	Username     string   `db:"username"`
	PasswordHash string   `db:"password"`
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PhoneNumber  *string  `db:"phone_number"`
	Role         UserRole `db:"role"`
}
