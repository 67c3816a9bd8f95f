package user

type User struct {
	Phone          string   `json:"phone"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	HashedPassword string   `json:"hashedPassword"`
	TosAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks"`
}

type CreateUserCmd struct {
	Phone        string
	FirstName    string
	LastName     string
	Password     string
	TosAgreement bool
}

// UpdateUserCmd changes only the fields that are set.
type UpdateUserCmd struct {
	FirstName *string
	LastName  *string
	Password  *string
}

func (c UpdateUserCmd) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Password == nil
}
