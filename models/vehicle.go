package models

import "strings"

// Vehicle statuses as stored in the inventory file.
const (
	StatusInStock = "in_stock"
	StatusSold    = "sold"
)

// Vehicle holds the structure for one record in the inventory file
type Vehicle struct {
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	Mileage       int     `json:"mileage"`
	Price         float64 `json:"price"`
	ChassisNumber string  `json:"chassisNumber"`
	Status        string  `json:"status"`
}

// NormalizeStatus lower-cases and trims a raw status value. Validating the
// result against the two allowed statuses is the inventory layer's job.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// ValidStatus reports whether a raw status value resolves to one of the two
// allowed statuses.
func ValidStatus(status string) bool {
	s := NormalizeStatus(status)
	return s == StatusInStock || s == StatusSold
}
