package crm

// CreateCustomerRequest is the payload for creating a customer.
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes   *string `json:"notes,omitempty"`
	Status  string  `json:"status" validate:"omitempty,oneof=lead active inactive prospect"`
	Source  string  `json:"source" validate:"omitempty,max=100"`
}

// UpdateCustomerRequest carries partial customer updates.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes   *string `json:"notes,omitempty"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=lead active inactive prospect"`
	Source  *string `json:"source,omitempty" validate:"omitempty,max=100"`
}

// ListCustomersRequest filters the customer list.
type ListCustomersRequest struct {
	Status *CustomerStatus
	Search string
	Limit  int
	Offset int
}
