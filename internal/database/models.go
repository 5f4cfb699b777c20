package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Employee struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EmployeeID   string    `json:"employee_id" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	TempPassword *string   `json:"-"`
	Department   *string   `json:"department"`
	IconURL      *string   `json:"icon_url"`
	Role         string    `json:"role" gorm:"default:'employee'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (e *Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
