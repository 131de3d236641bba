package handler

import (
	"time"

	"github.com/tappyimob/tappy-imob/internal/model"
)

// ClienteResponse is the projection returned by GET /api/cliente/:id
type ClienteResponse struct {
	ID          string           `json:"id"`
	Nome        string           `json:"nome"`
	Email       string           `json:"email"`
	Telefone    string           `json:"telefone"`
	Status      model.UserStatus `json:"status"`
	CPF         string           `json:"cpf"`
	Endereco    string           `json:"endereco"`
	Numero      string           `json:"numero"`
	Complemento string           `json:"complemento"`
	Bairro      string           `json:"bairro"`
	Cidade      string           `json:"cidade"`
	Estado      string           `json:"estado"`
	CEP         string           `json:"cep"`
	CreatedAt   time.Time        `json:"createdAt"`
	Imoveis     []ImovelResumo   `json:"imoveis"`
	Corretores  []CorretorResumo `json:"corretores"`
	Mensagens   []MensagemResumo `json:"mensagens"`
}

// ClienteResumo is the list projection of a cliente
type ClienteResumo struct {
	ID       string           `json:"id"`
	Nome     string           `json:"nome"`
	Email    string           `json:"email"`
	Telefone string           `json:"telefone"`
	Status   model.UserStatus `json:"status"`
	Cidade   string           `json:"cidade"`
	Estado   string           `json:"estado"`
}

// ImovelResumo is a property linked to a cliente
type ImovelResumo struct {
	ID     string  `json:"id"`
	Titulo string  `json:"titulo"`
	Tipo   string  `json:"tipo"`
	Preco  float64 `json:"preco"`
	Cidade string  `json:"cidade"`
	Estado string  `json:"estado"`
	Status string  `json:"status"`
}

// CorretorResumo is a broker as seen from a cliente
type CorretorResumo struct {
	ID       string           `json:"id"`
	Nome     string           `json:"nome"`
	Email    string           `json:"email"`
	Telefone string           `json:"telefone"`
	CRECI    string           `json:"creci"`
	Status   model.UserStatus `json:"status"`
}

// MensagemResumo is one message of a cliente conversation
type MensagemResumo struct {
	ID          string    `json:"id"`
	RemetenteID string    `json:"remetenteId"`
	Conteudo    string    `json:"conteudo"`
	Lida        bool      `json:"lida"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CorretorResponse is the projection returned by GET /api/corretor/:id
type CorretorResponse struct {
	ID        string           `json:"id"`
	Nome      string           `json:"nome"`
	Email     string           `json:"email"`
	Telefone  string           `json:"telefone"`
	CRECI     string           `json:"creci"`
	Status    model.UserStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	Clientes  []ClienteResumo  `json:"clientes"`
}

func newClienteResponse(c *model.Cliente) ClienteResponse {
	resp := ClienteResponse{
		ID:          c.ID,
		Nome:        c.User.Nome,
		Email:       c.User.Email,
		Telefone:    c.User.Telefone,
		Status:      c.User.Status,
		CPF:         c.CPF,
		Endereco:    c.Endereco,
		Numero:      c.Numero,
		Complemento: c.Complemento,
		Bairro:      c.Bairro,
		Cidade:      c.Cidade,
		Estado:      c.Estado,
		CEP:         c.CEP,
		CreatedAt:   c.CreatedAt,
		Imoveis:     make([]ImovelResumo, 0, len(c.Imoveis)),
		Corretores:  make([]CorretorResumo, 0, len(c.Corretores)),
		Mensagens:   make([]MensagemResumo, 0, len(c.Mensagens)),
	}

	for _, i := range c.Imoveis {
		resp.Imoveis = append(resp.Imoveis, ImovelResumo{
			ID:     i.ID,
			Titulo: i.Titulo,
			Tipo:   i.Tipo,
			Preco:  i.Preco,
			Cidade: i.Cidade,
			Estado: i.Estado,
			Status: i.Status,
		})
	}
	for i := range c.Corretores {
		resp.Corretores = append(resp.Corretores, newCorretorResumo(&c.Corretores[i]))
	}
	for _, m := range c.Mensagens {
		resp.Mensagens = append(resp.Mensagens, MensagemResumo{
			ID:          m.ID,
			RemetenteID: m.RemetenteID,
			Conteudo:    m.Conteudo,
			Lida:        m.Lida,
			CreatedAt:   m.CreatedAt,
		})
	}
	return resp
}

func newClienteResumo(c *model.Cliente) ClienteResumo {
	return ClienteResumo{
		ID:       c.ID,
		Nome:     c.User.Nome,
		Email:    c.User.Email,
		Telefone: c.User.Telefone,
		Status:   c.User.Status,
		Cidade:   c.Cidade,
		Estado:   c.Estado,
	}
}

func newCorretorResumo(c *model.Corretor) CorretorResumo {
	return CorretorResumo{
		ID:       c.ID,
		Nome:     c.User.Nome,
		Email:    c.User.Email,
		Telefone: c.User.Telefone,
		CRECI:    c.CRECI,
		Status:   c.User.Status,
	}
}

func newCorretorResponse(c *model.Corretor) CorretorResponse {
	resp := CorretorResponse{
		ID:        c.ID,
		Nome:      c.User.Nome,
		Email:     c.User.Email,
		Telefone:  c.User.Telefone,
		CRECI:     c.CRECI,
		Status:    c.User.Status,
		CreatedAt: c.CreatedAt,
		Clientes:  make([]ClienteResumo, 0, len(c.Clientes)),
	}
	for i := range c.Clientes {
		resp.Clientes = append(resp.Clientes, newClienteResumo(&c.Clientes[i]))
	}
	return resp
}
