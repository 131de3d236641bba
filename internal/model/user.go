package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the platform role of a user
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleImobiliaria Role = "IMOBILIARIA"
	RoleCorretor    Role = "CORRETOR"
	RoleCliente     Role = "CLIENTE"
)

// UserStatus is the lifecycle state of a user identity. Soft deletes move it to UserStatusInativo.
type UserStatus string

const (
	UserStatusAtivo    UserStatus = "ATIVO"
	UserStatusInativo  UserStatus = "INATIVO"
	UserStatusSuspenso UserStatus = "SUSPENSO"
)

// User represents the identity behind every actor of the platform
type User struct {
	ID        string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Nome      string     `json:"nome" gorm:"type:varchar(150);not null"`
	Email     string     `json:"email" gorm:"type:varchar(150);uniqueIndex;not null"`
	Senha     string     `json:"-" gorm:"type:varchar(255)"`
	Telefone  string     `json:"telefone" gorm:"type:varchar(30)"`
	Role      Role       `json:"role" gorm:"type:varchar(20);not null;index"`
	Status    UserStatus `json:"status" gorm:"type:varchar(20);not null;default:'ATIVO'"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "usuarios"
}

// BeforeCreate assigns an ID and the default lifecycle state
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = UserStatusAtivo
	}
	return nil
}

// Active reports whether the user can act on the platform
func (u *User) Active() bool {
	return u.Status == UserStatusAtivo
}
