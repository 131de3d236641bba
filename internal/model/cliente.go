package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente is a customer of one imobiliaria. Profile name, email and phone live on the owning User.
type Cliente struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);uniqueIndex;not null"`
	ImobiliariaID string    `json:"imobiliariaId" gorm:"type:varchar(36);index;not null"`
	CPF           string    `json:"cpf" gorm:"column:cpf;type:varchar(14)"`
	Endereco      string    `json:"endereco" gorm:"type:varchar(200)"`
	Numero        string    `json:"numero" gorm:"type:varchar(20)"`
	Complemento   string    `json:"complemento" gorm:"type:varchar(100)"`
	Bairro        string    `json:"bairro" gorm:"type:varchar(100)"`
	Cidade        string    `json:"cidade" gorm:"type:varchar(100)"`
	Estado        string    `json:"estado" gorm:"type:varchar(2)"`
	CEP           string    `json:"cep" gorm:"column:cep;type:varchar(9)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Imoveis    []Imovel   `json:"imoveis,omitempty" gorm:"many2many:cliente_imoveis;"`
	Corretores []Corretor `json:"corretores,omitempty" gorm:"many2many:cliente_corretores;"`
	Mensagens  []Mensagem `json:"mensagens,omitempty" gorm:"foreignKey:ClienteID"`
}

// TableName returns the database table name
func (Cliente) TableName() string {
	return "clientes"
}

// BeforeCreate assigns an ID
func (c *Cliente) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
