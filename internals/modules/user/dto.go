package user

type RegisterRequest struct {
	Phone        string `json:"phone" validate:"required,min=12,numeric"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	TosAgreement bool   `json:"tosAgreement" validate:"required"`
}

type UpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=128"`
}

type UserResponse struct {
	Phone        string   `json:"phone"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	TosAgreement bool     `json:"tosAgreement"`
	Checks       []string `json:"checks"`
}

func toResponse(u User) UserResponse {
	checks := u.Checks
	if checks == nil {
		checks = []string{}
	}
	return UserResponse{
		Phone:        u.Phone,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		TosAgreement: u.TosAgreement,
		Checks:       checks,
	}
}
