package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/events"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/heartbeat"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/rowstore"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/handling"
)

// Sleeper bloqueia por d ou até o contexto terminar
type Sleeper func(ctx context.Context, d time.Duration) error

// SweepResult resume uma varredura das linhas de uma conta
type SweepResult struct {
	Rows    int
	Handled int
}

// AccountLoop varre repetidamente as linhas de uma conta, despachando cada uma
// para o handler do seu status. O prazo do contexto só é observado entre
// varreduras e durante a pausa: handlers e gravações em andamento terminam.
type AccountLoop struct {
	store         rowstore.Store
	handlers      handling.Dispatcher
	recorder      heartbeat.Recorder
	publisher     events.Publisher
	sleepInterval time.Duration
	sleep         Sleeper
	runID         string
	now           func() time.Time
}

func NewAccountLoop(
	store rowstore.Store,
	handlers handling.Dispatcher,
	recorder heartbeat.Recorder,
	publisher events.Publisher,
	sleepInterval time.Duration,
	runID string,
) *AccountLoop {
	if recorder == nil {
		recorder = heartbeat.NewMemoryRecorder()
	}
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &AccountLoop{
		store:         store,
		handlers:      handlers,
		recorder:      recorder,
		publisher:     publisher,
		sleepInterval: sleepInterval,
		sleep:         sleepContext,
		runID:         runID,
		now:           time.Now,
	}
}

// Run executa varreduras até o prazo do contexto. Prazo atingido é o fim
// normal do laço; erros de handler ou de gravação encerram o laço da conta.
func (l *AccountLoop) Run(ctx context.Context, accountID string) error {
	work := context.WithoutCancel(ctx)

	for sweep := 1; ; sweep++ {
		if ctx.Err() != nil {
			return nil
		}

		result, err := l.Sweep(work, accountID)
		if err != nil {
			return err
		}
		l.beat(work, accountID, sweep, result)

		if err := l.sleep(ctx, l.sleepInterval); err != nil {
			return nil
		}
	}
}

// Finalize executa uma única varredura da conta
func (l *AccountLoop) Finalize(ctx context.Context, accountID string) error {
	work := context.WithoutCancel(ctx)

	result, err := l.Sweep(work, accountID)
	if err != nil {
		return err
	}
	l.beat(work, accountID, 0, result)
	return nil
}

// Sweep lê a coluna de contas, carrega apenas as linhas da conta e grava cada
// uma depois do handler. Linhas de outras contas nunca são carregadas.
func (l *AccountLoop) Sweep(ctx context.Context, accountID string) (SweepResult, error) {
	var result SweepResult

	rows, err := l.store.AccountIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("scheduler: scan account ids: %w", err)
	}

	for _, entry := range rows {
		if entry.AccountID == "" || entry.AccountID != accountID {
			continue
		}
		result.Rows++

		handled, err := l.processRow(ctx, accountID, entry.Index)
		if err != nil {
			return result, err
		}
		if handled {
			result.Handled++
		}
	}

	if err := l.store.Flush(ctx); err != nil {
		return result, fmt.Errorf("scheduler: flush: %w", err)
	}
	return result, nil
}

func (l *AccountLoop) processRow(ctx context.Context, accountID string, index int) (bool, error) {
	row, err := l.store.Load(ctx, index)
	if err != nil {
		return false, fmt.Errorf("scheduler: load row %d: %w", index, err)
	}

	record, err := rowstore.Decode(row)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"row":        index,
			"error":      err.Error(),
		}).Warn("Linha com metadados inválidos, ignorando")
		return false, nil
	}

	from := record.Status
	handler, ok := l.handlers.Dispatch(record.Status)
	if ok {
		if err := handler.Handle(ctx, accountID, record); err != nil {
			return false, fmt.Errorf("scheduler: row %d (%s): %w", index, from, err)
		}
		if err := rowstore.Encode(record, row); err != nil {
			return false, err
		}
	}

	if err := l.store.Save(ctx, row); err != nil {
		return false, fmt.Errorf("scheduler: save row %d: %w", index, err)
	}

	if ok && record.Status != from {
		l.publish(ctx, domain.Transition{
			RunID:     l.runID,
			AccountID: accountID,
			RowIndex:  index,
			RecordID:  record.ID,
			From:      from,
			To:        record.Status,
			At:        l.now(),
		})
	}
	return ok, nil
}

func (l *AccountLoop) publish(ctx context.Context, transition domain.Transition) {
	if err := l.publisher.PublishTransition(ctx, transition); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": transition.AccountID,
			"row":        transition.RowIndex,
			"error":      err.Error(),
		}).Warn("Falha ao publicar transição de status")
	}
}

func (l *AccountLoop) beat(ctx context.Context, accountID string, sweep int, result SweepResult) {
	hb := domain.Heartbeat{
		RunID:     l.runID,
		AccountID: accountID,
		Sweep:     sweep,
		Rows:      result.Rows,
		Handled:   result.Handled,
		At:        l.now(),
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     l.runID,
		"account_id": accountID,
		"sweep":      sweep,
		"rows":       result.Rows,
		"handled":    result.Handled,
	}).Info("Varredura da conta concluída")

	if err := l.recorder.Record(ctx, hb); err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Warn("Falha ao registrar heartbeat")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
