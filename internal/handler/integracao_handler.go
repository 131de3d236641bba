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

// IntegracaoHandler serves the integrations API consumed by the status panel
type IntegracaoHandler struct {
	db    *gorm.DB
	guard *guard.Guard
}

// NewIntegracaoHandler creates an IntegracaoHandler
func NewIntegracaoHandler(db *gorm.DB, g *guard.Guard) *IntegracaoHandler {
	return &IntegracaoHandler{db: db, guard: g}
}

// UpdateStatusRequest is the body of PATCH /api/ia/integracoes/:id/status
type UpdateStatusRequest struct {
	Status model.IntegracaoStatus `json:"status" validate:"required,oneof=ATIVA CONFIGURANDO PAUSADA ERRO"`
}

// ListIntegracoes returns the tenant's integrations, newest first, optionally for one agente
func (h *IntegracaoHandler) ListIntegracoes(c echo.Context) error {
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(integracaoResource.name, "list")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, integracaoResource, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	// Only integrations whose agente belongs to the tenant
	db := h.db.WithContext(ctx)
	query := db.Where("agente_id IN (?)", guard.TenantAgentes(db, tenant.ID))
	if agenteID := c.QueryParam("agenteId"); agenteID != "" {
		query = query.Where("agente_id = ?", agenteID)
	}

	integracoes := []model.Integracao{}
	if err := query.Order("created_at DESC").Find(&integracoes).Error; err != nil {
		return respondError(c, integracaoResource, guard.Internal("list integracoes", err))
	}

	return c.JSON(http.StatusOK, echo.Map{"integracoes": integracoes})
}

// UpdateStatus sets the status of one of the tenant's integrations
func (h *IntegracaoHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()
	prometheus.RecordResourceOperation(integracaoResource.name, "update_status")

	_, tenant, err := h.guard.Authorize(ctx, middleware.ClaimsFromEcho(c))
	if err != nil {
		return respondError(c, integracaoResource, err)
	}

	integracao, err := guard.ScopedIntegracao(h.db.WithContext(ctx), tenant.ID, c.Param("id"))
	if err != nil {
		return respondError(c, integracaoResource, err)
	}

	// Bind and validate request body
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err)
	}

	previous := integracao.Status
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.db.WithContext(ctx).Model(integracao).Update("status", req.Status).Error; err != nil {
		return respondError(c, integracaoResource, guard.Internal("update integracao status", err))
	}
	integracao.Status = req.Status

	prometheus.RecordIntegracaoTransition(string(req.Status))
	log.Info("Integracao status changed",
		zap.String("integracao_id", integracao.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(req.Status)))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Status atualizado com sucesso",
		"integracao": integracao,
	})
}
