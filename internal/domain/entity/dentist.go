package entity

import "time"

// Dentist représente un cabinet dentaire client du laboratoire.
type Dentist struct {
	ID        string
	LabID     string
	Name      string
	Email     string
	Phone     string
	Address   string
	Notes     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
