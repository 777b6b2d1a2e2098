package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAluno     = "aluno"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PublicID  string    `json:"public_id" gorm:"type:uuid;uniqueIndex"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.PublicID == "" {
		u.PublicID = uuid.NewString()
	}
	return nil
}
