package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Corretor is a broker working for one imobiliaria
type Corretor struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);uniqueIndex;not null"`
	ImobiliariaID string    `json:"imobiliariaId" gorm:"type:varchar(36);index;not null"`
	CRECI         string    `json:"creci" gorm:"column:creci;type:varchar(20)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Clientes []Cliente `json:"clientes,omitempty" gorm:"many2many:cliente_corretores;"`
}

// TableName returns the database table name
func (Corretor) TableName() string {
	return "corretores"
}

// BeforeCreate assigns an ID
func (c *Corretor) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
