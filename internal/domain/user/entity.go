package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role enum
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleEmployee   Role = "employee"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	HourlyRate   *decimal.Decimal
	CompanyID    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
