package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Stage é executado uma vez por conta, em uma das etapas da execução
type Stage func(ctx context.Context, accountID string) error

// AccountResult é o desfecho de uma conta em uma etapa
type AccountResult struct {
	AccountID string        `json:"account_id"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	Skipped   bool          `json:"skipped,omitempty"`
}

// RunReport resume uma execução completa do dispatcher
type RunReport struct {
	RunID      string          `json:"run_id"`
	Accounts   []string        `json:"accounts"`
	Excluded   []string        `json:"excluded,omitempty"`
	Loop       []AccountResult `json:"loop"`
	Finalize   []AccountResult `json:"finalize"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Failed devolve as contas que terminaram com erro em alguma etapa
func (r RunReport) Failed() []string {
	failed := make([]string, 0)
	seen := map[string]bool{}
	for _, results := range [][]AccountResult{r.Loop, r.Finalize} {
		for _, result := range results {
			if result.Error != "" && !seen[result.AccountID] {
				seen[result.AccountID] = true
				failed = append(failed, result.AccountID)
			}
		}
	}
	return failed
}

type DispatcherConfig struct {
	MaxAccounts    int
	LoopBudget     time.Duration
	FinalizeBudget time.Duration
}

// Dispatcher executa a etapa de laço em paralelo, uma goroutine por conta, e
// depois a etapa de finalização em sequência sobre as mesmas contas
type Dispatcher struct {
	config DispatcherConfig
}

func NewDispatcher(config DispatcherConfig) *Dispatcher {
	return &Dispatcher{config: config}
}

func (d *Dispatcher) Run(ctx context.Context, runID string, accounts []string, loop, finalize Stage) RunReport {
	report := RunReport{
		RunID:     runID,
		StartedAt: time.Now(),
	}

	selected := accounts
	if d.config.MaxAccounts > 0 && len(selected) > d.config.MaxAccounts {
		selected = accounts[:d.config.MaxAccounts]
		report.Excluded = append([]string(nil), accounts[d.config.MaxAccounts:]...)
		logrus.WithFields(logrus.Fields{
			"run_id":   runID,
			"max":      d.config.MaxAccounts,
			"excluded": len(report.Excluded),
		}).Warn("Limite de contas por execução atingido")
	}
	report.Accounts = append([]string(nil), selected...)

	// Cada goroutine escreve apenas no seu índice
	report.Loop = make([]AccountResult, len(selected))

	var g errgroup.Group
	for i, accountID := range selected {
		i, accountID := i, accountID
		g.Go(func() error {
			loopCtx, cancel := context.WithTimeout(ctx, d.config.LoopBudget)
			defer cancel()

			report.Loop[i] = runStage(loopCtx, "loop", runID, accountID, loop)
			return nil
		})
	}
	_ = g.Wait()

	finalizeCtx, cancel := context.WithTimeout(ctx, d.config.FinalizeBudget)
	defer cancel()

	report.Finalize = make([]AccountResult, 0, len(selected))
	for _, accountID := range selected {
		if finalizeCtx.Err() != nil {
			report.Finalize = append(report.Finalize, AccountResult{AccountID: accountID, Skipped: true})
			continue
		}
		report.Finalize = append(report.Finalize, runStage(finalizeCtx, "finalize", runID, accountID, finalize))
	}

	report.FinishedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"accounts": len(selected),
		"failed":   len(report.Failed()),
		"duration": report.FinishedAt.Sub(report.StartedAt).String(),
	}).Info("Execução do dispatcher concluída")

	return report
}

// runStage isola a conta: erro ou pânico ficam registrados apenas no resultado dela
func runStage(ctx context.Context, stageName, runID, accountID string, stage Stage) (result AccountResult) {
	start := time.Now()
	result.AccountID = accountID

	ctx = log.WithRun(ctx, runID, accountID)
	logger := log.L.WithContext(ctx).WithField("stage", stageName)

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("panic: %v", r)
			logger.WithFields(log.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Pânico recuperado na conta")
		}
		result.Duration = time.Since(start)
	}()

	if err := stage(ctx, accountID); err != nil {
		result.Error = err.Error()
		logger.WithError(err).Error("Etapa da conta terminou com erro")
	}
	return result
}
