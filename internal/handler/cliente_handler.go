package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tappyimob/tappy-imob/internal/guard"
	"github.com/tappyimob/tappy-imob/internal/middleware"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"github.com/tappyimob/tappy-imob/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ClienteHandler serves the tenant-scoped cliente endpoints
type ClienteHandler struct {
	db    *gorm.DB
	guard *guard.Guard
}

// NewClienteHandler creates a ClienteHandler
func NewClienteHandler(db *gorm.DB, g *guard.Guard) *ClienteHandler {
	return &ClienteHandler{db: db, guard: g}
}

// UpdateClienteRequest is the PATCH body. Every field is optional and empty values are ignored.
type UpdateClienteRequest struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	CPF         string `json:"cpf"`
	Endereco    string `json:"endereco"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep"`
	CorretorID  string `json:"corretorId"`
}

func (r *UpdateClienteRequest) userUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	setIfPresent(updates, "nome", r.Nome)
	setIfPresent(updates, "email", r.Email)
	setIfPresent(updates, "telefone", r.Telefone)
	return updates
}

func (r *UpdateClienteRequest) clienteUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	setIfPresent(updates, "cpf", r.CPF)
	setIfPresent(updates, "endereco", r.Endereco)
	setIfPresent(updates, "numero", r.Numero)
	setIfPresent(updates, "complemento", r.Complemento)
	setIfPresent(updates, "bairro", r.Bairro)
	setIfPresent(updates, "cidade", r.Cidade)
	setIfPresent(updates, "estado", r.Estado)
	setIfPresent(updates, "cep", r.CEP)
	return updates
}

// GetCliente returns the cliente profile with its imoveis, corretores and mensagens (newest first)
func (h *ClienteHandler) GetCliente(c echo.Context) error {
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(clienteResource.name, "get")

	// Resolve the caller's tenant from the session
	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	// Load the cliente with its relations, messages newest first
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := h.db.WithContext(ctx).
		Preload("User").
		Preload("Imoveis").
		Preload("Corretores.User").
		Preload("Mensagens", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})

	cliente, err := guard.Scoped[model.Cliente](query, tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	return c.JSON(http.StatusOK, newClienteResponse(cliente))
}

// ListClientes returns a summary of every cliente of the tenant
func (h *ClienteHandler) ListClientes(c echo.Context) error {
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(clienteResource.name, "list")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var clientes []model.Cliente
	if err := h.db.WithContext(ctx).
		Preload("User").
		Where("imobiliaria_id = ?", tenant.ID).
		Order("created_at DESC").
		Find(&clientes).Error; err != nil {
		return respondError(c, clienteResource, guard.Internal("list clientes", err))
	}

	// Always answer with an array, even when empty
	response := make([]ClienteResumo, 0, len(clientes))
	for i := range clientes {
		response = append(response, newClienteResumo(&clientes[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"clientes": response})
}

// UpdateCliente applies a partial update to the cliente and its owning user in one transaction.
// A corretorId outside the tenant is ignored without failing the rest of the update.
func (h *ClienteHandler) UpdateCliente(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(clienteResource.name, "update")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	// Check the cliente belongs to the tenant before reading the body
	cliente, err := guard.Scoped[model.Cliente](h.db.WithContext(ctx), tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	// Bind request body
	var req UpdateClienteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	var skipped error
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Address and document fields
		if updates := req.clienteUpdates(); len(updates) > 0 {
			if err := tx.Model(cliente).Updates(updates).Error; err != nil {
				return guard.Internal("update cliente", err)
			}
		}

		// Contact fields live on the owning user
		if updates := req.userUpdates(); len(updates) > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", cliente.UserID).Updates(updates).Error; err != nil {
				return guard.Internal("update cliente user", err)
			}
		}

		if req.CorretorID == "" {
			return nil
		}
		// The new corretor must belong to the same tenant, otherwise it is ignored
		corretor, err := guard.Scoped[model.Corretor](tx, tenant.ID, req.CorretorID)
		if errors.Is(err, guard.ErrNotFound) {
			skipped = guard.ErrValidationSkipped
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(cliente).Association("Corretores").Replace(corretor); err != nil {
			return guard.Internal("replace cliente corretor", err)
		}
		return nil
	})
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	if skipped != nil {
		prometheus.RecordSkippedValidation(clienteResource.name, "corretorId")
		log.Warn("Corretor reassignment ignored",
			zap.String("cliente_id", cliente.ID),
			zap.String("corretor_id", req.CorretorID),
			zap.Error(skipped))
	}

	log.Info("Cliente updated",
		zap.String("cliente_id", cliente.ID),
		zap.String("tenant_id", tenant.ID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Cliente atualizado com sucesso"})
}

// DeleteCliente deactivates the cliente's owning user. The cliente row is kept.
func (h *ClienteHandler) DeleteCliente(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(clienteResource.name, "delete")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	cliente, err := guard.Scoped[model.Cliente](h.db.WithContext(ctx), tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, clienteResource, err)
	}

	// Soft delete: deactivate the owning user and keep the row
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", cliente.UserID).
		Update("status", model.UserStatusInativo).Error; err != nil {
		return respondError(c, clienteResource, guard.Internal("deactivate cliente", err))
	}

	log.Info("Cliente deactivated",
		zap.String("cliente_id", cliente.ID),
		zap.String("tenant_id", tenant.ID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Cliente desativado com sucesso"})
}
