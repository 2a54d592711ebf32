package model

import (
	"strings"
	"time"
)

// Customer represents a store customer.
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email,omitempty" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Address   string    `json:"address,omitempty" db:"address"`
	City      string    `json:"city,omitempty" db:"city"`
	Country   string    `json:"country,omitempty" db:"country"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CustomerInput is the payload for creating or replacing a customer.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Validate trims the input and checks the required fields.
func (in *CustomerInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)

	if in.Name == "" {
		return NewDomainError(ErrCodeMissingField, "name is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return NewDomainError(ErrCodeInvalidParameter, "email is not a valid address")
	}
	return nil
}

// CustomerHistory is a customer together with every order they placed.
type CustomerHistory struct {
	Customer    Customer `json:"customer"`
	Orders      []Order  `json:"orders"`
	TotalOrders int      `json:"totalOrders"`
	TotalSpent  float64  `json:"totalSpent"`
}
