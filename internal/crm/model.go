package crm

import "time"

// CustomerStatus enumerates lifecycle stages of a customer relationship.
type CustomerStatus string

const (
	StatusLead     CustomerStatus = "lead"
	StatusActive   CustomerStatus = "active"
	StatusInactive CustomerStatus = "inactive"
	StatusProspect CustomerStatus = "prospect"
)

// ValidStatus reports whether s is a known customer status.
func ValidStatus(s CustomerStatus) bool {
	switch s {
	case StatusLead, StatusActive, StatusInactive, StatusProspect:
		return true
	}
	return false
}

// Customer is a buyer the agency sources goods for. The record carries no
// cached aggregates; order counts and revenue are computed on demand.
type Customer struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     *string        `json:"phone,omitempty"`
	Company   *string        `json:"company,omitempty"`
	Country   *string        `json:"country,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	Status    CustomerStatus `json:"status"`
	Source    string         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CustomerStats is the on-demand aggregate for a single customer.
type CustomerStats struct {
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}
