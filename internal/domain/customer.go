package domain

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Vehicle struct {
	ID             int64  `json:"id"`
	Model          string `json:"model"`
	RegistrationNo string `json:"registration_no"`
	Location       string `json:"location"`
}
