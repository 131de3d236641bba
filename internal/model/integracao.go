package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntegracaoTipo is the messaging channel of an integration
type IntegracaoTipo string

const (
	TipoWhatsApp  IntegracaoTipo = "WHATSAPP"
	TipoFacebook  IntegracaoTipo = "FACEBOOK"
	TipoInstagram IntegracaoTipo = "INSTAGRAM"
	TipoSiteChat  IntegracaoTipo = "SITE_CHAT"
	TipoEmail     IntegracaoTipo = "EMAIL"
	TipoSMS       IntegracaoTipo = "SMS"
	TipoLinkedIn  IntegracaoTipo = "LINKEDIN"
)

// IntegracaoTipos lists every channel type
var IntegracaoTipos = []IntegracaoTipo{
	TipoWhatsApp, TipoFacebook, TipoInstagram, TipoSiteChat, TipoEmail, TipoSMS, TipoLinkedIn,
}

// IntegracaoStatus is the state of an integration.
// CONFIGURANDO and ERRO are set by the channel process; operators only activate or pause.
type IntegracaoStatus string

const (
	StatusAtiva        IntegracaoStatus = "ATIVA"
	StatusConfigurando IntegracaoStatus = "CONFIGURANDO"
	StatusPausada      IntegracaoStatus = "PAUSADA"
	StatusErro         IntegracaoStatus = "ERRO"
)

// IntegracaoStatuses lists every integration state
var IntegracaoStatuses = []IntegracaoStatus{
	StatusAtiva, StatusConfigurando, StatusPausada, StatusErro,
}

// Valid reports whether s is a known integration state
func (s IntegracaoStatus) Valid() bool {
	for _, known := range IntegracaoStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Valid reports whether t is a known channel type
func (t IntegracaoTipo) Valid() bool {
	for _, known := range IntegracaoTipos {
		if t == known {
			return true
		}
	}
	return false
}

// Agente is the automation persona driving a set of integrations
type Agente struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ImobiliariaID string    `json:"imobiliariaId" gorm:"type:varchar(36);index;not null"`
	Nome          string    `json:"nome" gorm:"type:varchar(100);not null"`
	Ativo         bool      `json:"ativo" gorm:"default:true"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName returns the database table name
func (Agente) TableName() string {
	return "agentes"
}

// BeforeCreate assigns an ID
func (a *Agente) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Integracao is a configured messaging-channel connection of an agente
type Integracao struct {
	ID                 string           `json:"id" gorm:"type:varchar(36);primaryKey"`
	AgenteID           string           `json:"agenteId" gorm:"type:varchar(36);index;not null"`
	Nome               string           `json:"nome" gorm:"type:varchar(100);not null"`
	Tipo               IntegracaoTipo   `json:"tipo" gorm:"type:varchar(20);not null"`
	Status             IntegracaoStatus `json:"status" gorm:"type:varchar(20);not null;default:'CONFIGURANDO'"`
	WebhookURL         *string          `json:"webhookUrl,omitempty" gorm:"column:webhook_url;type:varchar(500)"`
	MensagensEnviadas  int              `json:"mensagensEnviadas" gorm:"default:0"`
	MensagensRecebidas int              `json:"mensagensRecebidas" gorm:"default:0"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	UltimaAtividade    *time.Time       `json:"ultimaAtividade,omitempty"`

	Agente *Agente `json:"agente,omitempty" gorm:"foreignKey:AgenteID"`
}

// TableName returns the database table name
func (Integracao) TableName() string {
	return "integracoes"
}

// BeforeCreate assigns an ID and the initial state
func (i *Integracao) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusConfigurando
	}
	return nil
}

// All returns every model, in migration order
func All() []interface{} {
	return []interface{}{
		&User{}, &Imobiliaria{}, &Corretor{}, &Imovel{}, &Cliente{}, &Mensagem{}, &Agente{}, &Integracao{},
	}
}
