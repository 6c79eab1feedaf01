package organisation

import "strings"

// Address is the postal address shown on reports.
type Address struct {
	Street     string `json:"street"`
	Suburb     string `json:"suburb"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

// Display joins the street-level parts for single-line report columns.
func (a Address) Display() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.Suburb, a.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type Organisation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   Address `json:"address"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
