package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Imovel is a property listed by an imobiliaria
type Imovel struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ImobiliariaID string    `json:"imobiliariaId" gorm:"type:varchar(36);index;not null"`
	Titulo        string    `json:"titulo" gorm:"type:varchar(200);not null"`
	Tipo          string    `json:"tipo" gorm:"type:varchar(30)"`
	Preco         float64   `json:"preco"`
	Endereco      string    `json:"endereco" gorm:"type:varchar(200)"`
	Cidade        string    `json:"cidade" gorm:"type:varchar(100)"`
	Estado        string    `json:"estado" gorm:"type:varchar(2)"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:'DISPONIVEL'"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName returns the database table name
func (Imovel) TableName() string {
	return "imoveis"
}

// BeforeCreate assigns an ID
func (i *Imovel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
