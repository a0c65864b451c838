package handling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

// ErrNotResolved indica que uma entidade da plataforma citada pela linha não
// existe. A linha fica como está e é tentada de novo no próximo ciclo.
var ErrNotResolved = errors.New("handling: entity not resolved")

// Handler executa a ação associada ao status de uma linha, mutando o registro
// em memória. A persistência fica a cargo de quem chamou.
type Handler interface {
	Handle(ctx context.Context, customerID string, record *domain.WorkRecord) error
}

type HandlerFunc func(ctx context.Context, customerID string, record *domain.WorkRecord) error

func (f HandlerFunc) Handle(ctx context.Context, customerID string, record *domain.WorkRecord) error {
	return f(ctx, customerID, record)
}

// Dispatcher resolve o handler de um status
type Dispatcher interface {
	Dispatch(status domain.Status) (Handler, bool)
}

type Registry struct {
	handlers map[domain.Status]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[domain.Status]Handler{}}
}

// NewDefaultRegistry registra os handlers de todos os status acionáveis
func NewDefaultRegistry(h *Handlers) *Registry {
	r := NewRegistry()
	r.Register(domain.StatusOff, HandlerFunc(h.Off))
	r.Register(domain.StatusVideoReady, HandlerFunc(h.VideoReady))
	r.Register(domain.StatusImageReady, HandlerFunc(h.ImageReady))
	r.Register(domain.StatusPriceChanged, HandlerFunc(h.PriceChanged))
	return r
}

// Register associa o handler ao status. Erros transitórios da plataforma e
// entidades não encontradas são registrados no log e não propagados.
func (r *Registry) Register(status domain.Status, handler Handler) {
	r.handlers[status] = tolerant(status, handler)
}

func (r *Registry) Dispatch(status domain.Status) (Handler, bool) {
	handler, ok := r.handlers[status]
	return handler, ok
}

// Validate falha se algum status acionável não tiver handler
func (r *Registry) Validate() error {
	missing := make([]string, 0)
	for _, status := range domain.ActionableStatuses {
		if _, ok := r.handlers[status]; !ok {
			missing = append(missing, fmt.Sprintf("%q", status))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("handling: status sem handler: %s", strings.Join(missing, ", "))
}

func tolerant(status domain.Status, handler Handler) Handler {
	return HandlerFunc(func(ctx context.Context, customerID string, record *domain.WorkRecord) error {
		err := handler.Handle(ctx, customerID, record)
		if err == nil {
			return nil
		}

		fields := logrus.Fields{
			"customer_id": customerID,
			"row":         record.RowIndex,
			"record_id":   record.ID,
			"status":      status,
			"error":       err.Error(),
		}
		switch {
		case errors.Is(err, ErrNotResolved):
			logrus.WithFields(fields).Warn("handling: entidade não encontrada, linha mantida")
			return nil
		case googleads.IsTransient(err):
			logrus.WithFields(fields).Warn("handling: erro transitório, nova tentativa no próximo ciclo")
			return nil
		}
		return err
	})
}
