package entity

import (
	"strings"
	"time"
)

type Employee struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Department string    `json:"department"`
	JobTitle   string    `json:"jobTitle"`
	CreatedAt  time.Time `json:"createdAt"`
}

// валидация
type CreateEmployeeRequest struct {
	Name       string  `json:"name" validate:"notblank,max=255"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	Department string  `json:"department" validate:"notblank,max=255"`
	JobTitle   string  `json:"jobTitle" validate:"notblank,max=255"`
}

// Validate also drops a blank phone so it is stored as NULL.
func (r *CreateEmployeeRequest) Validate() error {
	if r.Phone != nil && strings.TrimSpace(*r.Phone) == "" {
		r.Phone = nil
	}
	return validateStruct(ErrInvalidEmployeeData, r)
}
