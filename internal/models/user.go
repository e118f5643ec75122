// internal/models/user.go
package models

// User is an agency producer or staff member who owns submissions.
type User struct {
	ID        string `json:"id"`
	AgencyID  string `json:"agencyId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"` // "producer", "csr", "admin"
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}
