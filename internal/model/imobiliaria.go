package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Imobiliaria is the agency account. It is the tenant owning clientes, corretores, imoveis and agentes.
type Imobiliaria struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);uniqueIndex;not null"`
	RazaoSocial string    `json:"razaoSocial" gorm:"type:varchar(200);not null"`
	CNPJ        string    `json:"cnpj" gorm:"type:varchar(20)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the database table name
func (Imobiliaria) TableName() string {
	return "imobiliarias"
}

// BeforeCreate assigns an ID
func (i *Imobiliaria) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
