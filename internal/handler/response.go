package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tappyimob/tappy-imob/internal/guard"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"github.com/tappyimob/tappy-imob/prometheus"
	"go.uber.org/zap"
)

// resource names a tenant-scoped resource in logs, metrics and not-found responses
type resource struct {
	name     string
	notFound string
}

var (
	clienteResource    = resource{name: "cliente", notFound: "Cliente não encontrado"}
	corretorResource   = resource{name: "corretor", notFound: "Corretor não encontrado"}
	integracaoResource = resource{name: "integracao", notFound: "Integração não encontrada"}
)

// respondError converts a guard error to the HTTP contract. Internal failures are
// logged with their cause and reported without detail.
func respondError(c echo.Context, res resource, err error) error {
	log := logger.FromEcho(c)
	status := guard.StatusCode(err)

	switch status {
	case http.StatusUnauthorized:
		return c.JSON(status, echo.Map{"error": "Não autenticado"})
	case http.StatusForbidden:
		prometheus.RecordGuardDenial(res.name, guard.Reason(err))
		log.Warn("Tenant access denied", zap.String("resource", res.name))
		return c.JSON(status, echo.Map{"error": "Acesso negado"})
	case http.StatusNotFound:
		prometheus.RecordGuardDenial(res.name, guard.Reason(err))
		log.Info("Tenant-scoped resource not found",
			zap.String("resource", res.name),
			zap.String("id", c.Param("id")))
		return c.JSON(status, echo.Map{"error": res.notFound})
	default:
		log.Error("Request failed",
			zap.String("resource", res.name),
			zap.String("id", c.Param("id")),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno do servidor"})
	}
}

func badRequest(c echo.Context, err error) error {
	logger.FromEcho(c).Warn("Invalid request body", zap.Error(err))
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Dados inválidos"})
}

// setIfPresent records value under column unless it is empty. Empty strings are
// treated as absent, so a PATCH can never clear a field to "".
func setIfPresent(updates map[string]interface{}, column, value string) {
	if value != "" {
		updates[column] = value
	}
}
