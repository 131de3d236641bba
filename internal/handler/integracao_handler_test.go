package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/internal/testutil"
)

type integracoesResponse struct {
	Integracoes []model.Integracao `json:"integracoes"`
}

func TestListIntegracoes(t *testing.T) {
	s := newTestServer(t)

	t1 := testutil.CreateTenant(t, s.db, "Imob Um")
	t2 := testutil.CreateTenant(t, s.db, "Imob Dois")
	whatsapp := testutil.CreateIntegracao(t, s.db, t1, model.TipoWhatsApp, model.StatusAtiva)
	email := testutil.CreateIntegracao(t, s.db, t1, model.TipoEmail, model.StatusPausada)
	testutil.CreateIntegracao(t, s.db, t2, model.TipoSMS, model.StatusAtiva)

	token := s.token(t, t1.Owner)

	t.Run("tenant integrations only", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/ia/integracoes", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp integracoesResponse
		decode(t, rec, &resp)

		ids := []string{}
		for _, i := range resp.Integracoes {
			ids = append(ids, i.ID)
		}
		assert.ElementsMatch(t, []string{whatsapp.ID, email.ID}, ids)
	})

	t.Run("filtered by agente", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/ia/integracoes?agenteId="+email.AgenteID, token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp integracoesResponse
		decode(t, rec, &resp)
		require.Len(t, resp.Integracoes, 1)
		assert.Equal(t, email.ID, resp.Integracoes[0].ID)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		t3 := testutil.CreateTenant(t, s.db, "Imob Tres")
		rec := s.do(t, http.MethodGet, "/api/ia/integracoes", s.token(t, t3.Owner), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"integracoes":[]}`, rec.Body.String())
	})
}

func TestUpdateIntegracaoStatus(t *testing.T) {
	s := newTestServer(t)

	t1 := testutil.CreateTenant(t, s.db, "Imob Um")
	t2 := testutil.CreateTenant(t, s.db, "Imob Dois")
	own := testutil.CreateIntegracao(t, s.db, t1, model.TipoWhatsApp, model.StatusConfigurando)
	foreign := testutil.CreateIntegracao(t, s.db, t2, model.TipoSMS, model.StatusAtiva)

	token := s.token(t, t1.Owner)
	path := func(id string) string { return "/api/ia/integracoes/" + id + "/status" }

	t.Run("activates", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path(own.ID), token, `{"status":"ATIVA"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Message    string           `json:"message"`
			Integracao model.Integracao `json:"integracao"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, "Status atualizado com sucesso", resp.Message)
		assert.Equal(t, model.StatusAtiva, resp.Integracao.Status)

		var stored model.Integracao
		require.NoError(t, s.db.First(&stored, "id = ?", own.ID).Error)
		assert.Equal(t, model.StatusAtiva, stored.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		for _, body := range []string{`{"status":"LIGADA"}`, `{}`, `{"status":`} {
			rec := s.do(t, http.MethodPatch, path(own.ID), token, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("foreign integration is not found", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path(foreign.ID), token, `{"status":"PAUSADA"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Integração não encontrada"}`, rec.Body.String())

		var stored model.Integracao
		require.NoError(t, s.db.First(&stored, "id = ?", foreign.ID).Error)
		assert.Equal(t, model.StatusAtiva, stored.Status)
	})
}
