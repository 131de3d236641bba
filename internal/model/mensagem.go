package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mensagem is a message exchanged with a cliente
type Mensagem struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ClienteID   string    `json:"clienteId" gorm:"type:varchar(36);index;not null"`
	RemetenteID string    `json:"remetenteId" gorm:"type:varchar(36)"`
	Conteudo    string    `json:"conteudo" gorm:"type:text;not null"`
	Lida        bool      `json:"lida" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

// TableName returns the database table name
func (Mensagem) TableName() string {
	return "mensagens"
}

// BeforeCreate assigns an ID
func (m *Mensagem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
