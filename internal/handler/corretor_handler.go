package handler

import (
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

// CorretorHandler serves the tenant-scoped corretor endpoints
type CorretorHandler struct {
	db    *gorm.DB
	guard *guard.Guard
}

// NewCorretorHandler creates a CorretorHandler
func NewCorretorHandler(db *gorm.DB, g *guard.Guard) *CorretorHandler {
	return &CorretorHandler{db: db, guard: g}
}

// UpdateCorretorRequest is the PATCH body; empty values are ignored
type UpdateCorretorRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	CRECI    string `json:"creci"`
}

// GetCorretor returns the corretor profile with the clientes assigned to it
func (h *CorretorHandler) GetCorretor(c echo.Context) error {
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(corretorResource.name, "get")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	// Load the corretor with the clientes assigned to it
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := h.db.WithContext(ctx).Preload("User").Preload("Clientes.User")
	corretor, err := guard.Scoped[model.Corretor](query, tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	return c.JSON(http.StatusOK, newCorretorResponse(corretor))
}

// UpdateCorretor applies a partial update to the corretor and its owning user in one transaction
func (h *CorretorHandler) UpdateCorretor(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(corretorResource.name, "update")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	corretor, err := guard.Scoped[model.Corretor](h.db.WithContext(ctx), tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	// Bind request body
	var req UpdateCorretorRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	// Empty values are not applied
	userUpdates := map[string]interface{}{}
	setIfPresent(userUpdates, "nome", req.Nome)
	setIfPresent(userUpdates, "email", req.Email)
	setIfPresent(userUpdates, "telefone", req.Telefone)

	defer prometheus.TrackDBOperation("update")(time.Now())
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", corretor.UserID).Updates(userUpdates).Error; err != nil {
				return guard.Internal("update corretor user", err)
			}
		}
		if req.CRECI != "" {
			if err := tx.Model(corretor).Update("creci", req.CRECI).Error; err != nil {
				return guard.Internal("update corretor", err)
			}
		}
		return nil
	})
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	log.Info("Corretor updated",
		zap.String("corretor_id", corretor.ID),
		zap.String("tenant_id", tenant.ID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Corretor atualizado com sucesso"})
}

// DeleteCorretor deactivates the corretor's owning user. The corretor row is kept.
func (h *CorretorHandler) DeleteCorretor(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(corretorResource.name, "delete")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	corretor, err := guard.Scoped[model.Corretor](h.db.WithContext(ctx), tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, corretorResource, err)
	}

	// Soft delete: deactivate the owning user and keep the row
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", corretor.UserID).
		Update("status", model.UserStatusInativo).Error; err != nil {
		return respondError(c, corretorResource, guard.Internal("deactivate corretor", err))
	}

	log.Info("Corretor deactivated",
		zap.String("corretor_id", corretor.ID),
		zap.String("tenant_id", tenant.ID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Corretor desativado com sucesso"})
}
