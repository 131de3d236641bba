// Package panel holds the state of the integration status panel: the fetched
// integrations, the tipo and status filters, a single in-flight flag shared by
// refresh and every transition, the inline load error and the toast queue.
package panel

import (
	"context"
	"errors"
	"sync"

	"github.com/tappyimob/tappy-imob/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrBusy means a fetch or a transition is already in flight
	ErrBusy = errors.New("panel busy")
	// ErrClosed means the panel was torn down and the response was discarded
	ErrClosed = errors.New("panel closed")
	// ErrUnknownIntegracao means the id is not in the fetched collection
	ErrUnknownIntegracao = errors.New("unknown integracao")
	// ErrTransitionNotOffered means the action is not available from the current status
	ErrTransitionNotOffered = errors.New("transition not offered")
	// ErrLoadFailed means the last list fetch failed; only a refresh is accepted
	ErrLoadFailed = errors.New("integracoes not loaded")
)

// Action is an operator transition
type Action string

const (
	ActionActivate Action = "activate"
	ActionPause    Action = "pause"
)

// Target returns the status an action moves to
func (a Action) Target() model.IntegracaoStatus {
	if a == ActionPause {
		return model.StatusPausada
	}
	return model.StatusAtiva
}

// Actions returns the transitions offered from status
func Actions(status model.IntegracaoStatus) []Action {
	var actions []Action
	if status != model.StatusAtiva {
		actions = append(actions, ActionActivate)
	}
	if status == model.StatusAtiva || status == model.StatusConfigurando {
		actions = append(actions, ActionPause)
	}
	return actions
}

func offered(status model.IntegracaoStatus, action Action) bool {
	for _, a := range Actions(status) {
		if a == action {
			return true
		}
	}
	return false
}

// EmptyState tells what to render when the filtered list is empty
type EmptyState int

const (
	// EmptyNone means there is something to list, or the load error is shown instead
	EmptyNone EmptyState = iota
	// EmptyNoIntegracoes means nothing is configured yet: offer to create one
	EmptyNoIntegracoes
	// EmptyNoMatch means the filters exclude every integration
	EmptyNoMatch
)

// Toast is a dismissible transition failure notice
type Toast struct {
	ID      int
	Message string
}

// State is a snapshot of what the panel renders
type State struct {
	Integracoes        []model.Integracao
	Empty              EmptyState
	Loading            bool
	Updating           bool
	RefreshEnabled     bool
	TransitionsEnabled bool
	LoadError          string
	Toasts             []Toast
}

// Panel is safe for concurrent use. Server calls are made without holding the lock.
type Panel struct {
	api API
	log *zap.Logger

	mu          sync.Mutex
	items       []model.Integracao
	tipo        model.IntegracaoTipo
	status      model.IntegracaoStatus
	loading     bool
	atualizando bool
	loadErr     error
	toasts      []Toast
	nextToast   int
	closed      bool
}

// New creates an empty panel over api
func New(api API, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{api: api, log: log}
}

// Refresh refetches the whole collection. A failure sets the inline error,
// which hides the list and blocks transitions until the next successful refresh.
func (p *Panel) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.loading || p.atualizando {
		p.mu.Unlock()
		return ErrBusy
	}
	p.loading = true
	p.mu.Unlock()

	items, err := p.api.ListIntegracoes(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if p.closed {
		p.log.Debug("Discarding integracoes list after close")
		return ErrClosed
	}
	if err != nil {
		p.log.Warn("Failed to load integracoes", zap.Error(err))
		p.loadErr = err
		return err
	}

	p.items = items
	p.loadErr = nil
	return nil
}

// Activate moves the integration to ATIVA
func (p *Panel) Activate(ctx context.Context, id string) error {
	return p.transition(ctx, id, ActionActivate)
}

// Pause moves the integration to PAUSADA
func (p *Panel) Pause(ctx context.Context, id string) error {
	return p.transition(ctx, id, ActionPause)
}

func (p *Panel) transition(ctx context.Context, id string, action Action) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.loading || p.atualizando {
		p.mu.Unlock()
		return ErrBusy
	}
	if p.loadErr != nil {
		p.mu.Unlock()
		return ErrLoadFailed
	}
	idx := p.indexOf(id)
	if idx < 0 {
		p.mu.Unlock()
		return ErrUnknownIntegracao
	}
	if !offered(p.items[idx].Status, action) {
		p.mu.Unlock()
		return ErrTransitionNotOffered
	}
	nome := p.items[idx].Nome
	p.atualizando = true
	p.mu.Unlock()

	target := action.Target()
	err := p.api.UpdateStatus(ctx, id, target)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.atualizando = false
	if p.closed {
		p.log.Debug("Discarding status update after close", zap.String("integracao_id", id))
		return ErrClosed
	}
	if err != nil {
		p.log.Warn("Failed to update integracao status",
			zap.String("integracao_id", id),
			zap.String("status", string(target)),
			zap.Error(err))
		p.pushToast("Não foi possível atualizar o status de " + nome)
		return err
	}

	// refresh is blocked while a transition is in flight, so the collection is unchanged
	if idx := p.indexOf(id); idx >= 0 {
		p.items[idx].Status = target
	}
	return nil
}

func (p *Panel) indexOf(id string) int {
	for i := range p.items {
		if p.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Panel) pushToast(msg string) {
	p.nextToast++
	p.toasts = append(p.toasts, Toast{ID: p.nextToast, Message: msg})
}

// DismissToast removes a toast; unknown ids are ignored
func (p *Panel) DismissToast(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, t := range p.toasts {
		if t.ID == id {
			p.toasts = append(p.toasts[:i], p.toasts[i+1:]...)
			return
		}
	}
}

// SetTipoFilter sets the tipo filter; "" means all. It never refetches.
func (p *Panel) SetTipoFilter(tipo model.IntegracaoTipo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tipo = tipo
}

// SetStatusFilter sets the status filter; "" means all. It never refetches.
func (p *Panel) SetStatusFilter(status model.IntegracaoStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

// Visible returns the integrations matching both filters, in fetch order
func (p *Panel) Visible() []model.Integracao {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible()
}

func (p *Panel) visible() []model.Integracao {
	if p.loadErr != nil {
		return []model.Integracao{}
	}
	out := make([]model.Integracao, 0, len(p.items))
	for _, i := range p.items {
		if p.tipo != "" && i.Tipo != p.tipo {
			continue
		}
		if p.status != "" && i.Status != p.status {
			continue
		}
		out = append(out, i)
	}
	return out
}

// EmptyState classifies the filtered list
func (p *Panel) EmptyState() EmptyState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.emptyState(len(p.visible()))
}

func (p *Panel) emptyState(visible int) EmptyState {
	switch {
	case visible > 0, p.loadErr != nil:
		return EmptyNone
	case p.tipo == "" && p.status == "":
		return EmptyNoIntegracoes
	default:
		return EmptyNoMatch
	}
}

// State returns a snapshot of the panel
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	visible := p.visible()
	s := State{
		Integracoes:        visible,
		Empty:              p.emptyState(len(visible)),
		Loading:            p.loading,
		Updating:           p.atualizando,
		RefreshEnabled:     !p.closed && !p.loading && !p.atualizando,
		TransitionsEnabled: !p.closed && !p.loading && !p.atualizando && p.loadErr == nil,
		Toasts:             append([]Toast(nil), p.toasts...),
	}
	if p.loadErr != nil {
		s.LoadError = "Não foi possível carregar as integrações"
	}
	return s
}

// Close tears the panel down. Responses that arrive afterward are discarded.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}
