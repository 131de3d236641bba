package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tappyimob/tappy-imob/internal/panel"
	"github.com/tappyimob/tappy-imob/pkg/config"
	"go.uber.org/zap"
)

type fakeServer struct {
	mu      sync.Mutex
	updates []string
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "ag-1", r.URL.Query().Get("agenteId"))
			io.WriteString(w, `{"integracoes":[`+
				`{"id":"1","nome":"WhatsApp","tipo":"WHATSAPP","status":"ATIVA"},`+
				`{"id":"2","nome":"Instagram","tipo":"INSTAGRAM","status":"PAUSADA"}]}`)
		case http.MethodPatch:
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.mu.Lock()
			f.updates = append(f.updates, r.URL.Path+"="+body["status"])
			f.mu.Unlock()
			io.WriteString(w, `{"message":"Status atualizado com sucesso"}`)
		}
	})
}

func newPanelConfig(url string) config.PanelConfig {
	return config.PanelConfig{BaseURL: url, Token: "tok", AgenteID: "ag-1", Timeout: time.Second}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		updates []string
		wantErr error
	}{
		{name: "list by default", args: nil},
		{name: "list", args: []string{"list"}},
		{name: "activate", args: []string{"activate", "2"}, updates: []string{"/api/ia/integracoes/2/status=ATIVA"}},
		{name: "pause", args: []string{"pause", "1"}, updates: []string{"/api/ia/integracoes/1/status=PAUSADA"}},
		{name: "transition not offered", args: []string{"activate", "1"}, wantErr: panel.ErrTransitionNotOffered},
		{name: "unknown id", args: []string{"pause", "9"}, wantErr: panel.ErrUnknownIntegracao},
		{name: "missing id", args: []string{"pause"}, wantErr: errUsage},
		{name: "unknown command", args: []string{"delete", "1"}, wantErr: errUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeServer{}
			srv := httptest.NewServer(fake.handler(t))
			defer srv.Close()

			err := run(context.Background(), newPanelConfig(srv.URL), tt.args, zap.NewNop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.updates, fake.updates)
		})
	}
}

func TestRunRequiresToken(t *testing.T) {
	conf := newPanelConfig("http://localhost:1")
	conf.Token = ""

	err := run(context.Background(), conf, nil, zap.NewNop())
	assert.ErrorContains(t, err, "PANEL_TOKEN")
}

func TestRunReportsLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"Não autenticado"}`)
	}))
	defer srv.Close()

	err := run(context.Background(), newPanelConfig(srv.URL), []string{"pause", "1"}, zap.NewNop())

	var apiErr *panel.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
