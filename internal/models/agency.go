// internal/models/agency.go
package models

// Agency is the producer organization whose details appear in the
// producer blocks of generated ACORD forms.
type Agency struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ContactName string  `json:"contactName,omitempty"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	Address     Address `json:"address"`
	CreatedAt   string  `json:"createdAt"`
}
