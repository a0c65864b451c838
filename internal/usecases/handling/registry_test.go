package handling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adsdomain "github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

func TestRegistry_Validate(t *testing.T) {
	empty := NewRegistry()
	err := empty.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Video Ready"`)
	assert.Contains(t, err.Error(), `"Off"`)

	partial := NewRegistry()
	noop := HandlerFunc(func(context.Context, string, *domain.WorkRecord) error { return nil })
	partial.Register(domain.StatusOff, noop)
	partial.Register(domain.StatusVideoReady, noop)
	partial.Register(domain.StatusImageReady, noop)
	err = partial.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Price Changed"`)

	assert.NoError(t, NewDefaultRegistry(NewHandlers(nil, nil)).Validate())
}

func TestRegistry_Dispatch(t *testing.T) {
	registry := NewDefaultRegistry(NewHandlers(nil, nil))

	for _, status := range domain.ActionableStatuses {
		_, ok := registry.Dispatch(status)
		assert.True(t, ok, status)
	}
	for _, status := range []domain.Status{domain.StatusNew, domain.StatusRunning, domain.StatusPaused, domain.StatusDone, "Unknown"} {
		_, ok := registry.Dispatch(status)
		assert.False(t, ok, status)
	}
}

func TestRegistry_ToleratesTransientAndUnresolved(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "sucesso", err: nil},
		{name: "limite de requisições", err: &adsdomain.APIError{HTTPStatus: 429, Status: "RESOURCE_EXHAUSTED"}},
		{name: "indisponível embrulhado", err: errors.Join(errors.New("find campaign"), &adsdomain.APIError{HTTPStatus: 503})},
		{name: "prazo excedido", err: context.DeadlineExceeded},
		{name: "entidade não encontrada", err: ErrNotResolved},
		{name: "erro permanente", err: &adsdomain.APIError{HTTPStatus: 400, Status: "INVALID_ARGUMENT"}, wantErr: true},
		{name: "erro genérico", err: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			registry.Register(domain.StatusOff, HandlerFunc(func(context.Context, string, *domain.WorkRecord) error {
				return tt.err
			}))

			handler, ok := registry.Dispatch(domain.StatusOff)
			require.True(t, ok)

			err := handler.Handle(context.Background(), "111", &domain.WorkRecord{RowIndex: 2})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
