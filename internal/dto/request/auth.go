package request

type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=50"`
	Password    string  `json:"password" validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=8,max=15"`
	Role        string  `json:"role" validate:"omitempty,oneof=user owner"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
