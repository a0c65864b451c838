package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/events"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/heartbeat"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
	"github.com/vfg2006/campaign-orchestrator/internal/rowstore"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/handling"
	"github.com/vfg2006/campaign-orchestrator/pkg/utils"
)

var ErrRunInProgress = errors.New("scheduler: run already in progress")

// CampaignRunConfig representa a configuração do agendador de execuções
type CampaignRunConfig struct {
	CronSchedule  string
	Enabled       bool
	Accounts      []string
	SleepInterval time.Duration
	Dispatcher    DispatcherConfig
}

// CampaignRunService agenda e executa o dispatcher sobre as contas da tabela
type CampaignRunService struct {
	scheduler  *gocron.Scheduler
	config     CampaignRunConfig
	store      rowstore.Store
	handlers   handling.Dispatcher
	recorder   heartbeat.Recorder
	publisher  events.Publisher
	dispatcher *Dispatcher
	sleep      Sleeper

	runMutex        sync.Mutex
	runRunning      bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastReport      *RunReport
}

func NewCampaignRunService(
	store rowstore.Store,
	handlers handling.Dispatcher,
	recorder heartbeat.Recorder,
	publisher events.Publisher,
	appConfig *config.Config,
) *CampaignRunService {
	runConfig := CampaignRunConfig{
		CronSchedule:  appConfig.Dispatch.CronSchedule,
		Enabled:       appConfig.Dispatch.Enabled,
		Accounts:      appConfig.Dispatch.Accounts,
		SleepInterval: appConfig.Dispatch.SleepInterval,
		Dispatcher: DispatcherConfig{
			MaxAccounts:    appConfig.Dispatch.MaxAccounts,
			LoopBudget:     appConfig.Dispatch.LoopBudget,
			FinalizeBudget: appConfig.Dispatch.FinalizeBudget,
		},
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   runConfig.CronSchedule,
		"enabled":         runConfig.Enabled,
		"accounts":        len(runConfig.Accounts),
		"max_accounts":    runConfig.Dispatcher.MaxAccounts,
		"loop_budget":     runConfig.Dispatcher.LoopBudget.String(),
		"finalize_budget": runConfig.Dispatcher.FinalizeBudget.String(),
		"sleep_interval":  runConfig.SleepInterval.String(),
	}).Info("Configuração do agendador de campanhas carregada")

	return NewCampaignRunServiceWithConfig(store, handlers, recorder, publisher, runConfig)
}

func NewCampaignRunServiceWithConfig(
	store rowstore.Store,
	handlers handling.Dispatcher,
	recorder heartbeat.Recorder,
	publisher events.Publisher,
	runConfig CampaignRunConfig,
) *CampaignRunService {
	if recorder == nil {
		recorder = heartbeat.NewMemoryRecorder()
	}
	return &CampaignRunService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     runConfig,
		store:      store,
		handlers:   handlers,
		recorder:   recorder,
		publisher:  publisher,
		dispatcher: NewDispatcher(runConfig.Dispatcher),
		sleep:      sleepContext,
	}
}

// Start inicia o agendador
func (s *CampaignRunService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Execução agendada de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunOnce(ctx); err != nil {
			logrus.WithError(err).Info("Execução agendada ignorada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar execução de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa o dispatcher uma vez. Devolve ErrRunInProgress se já houver
// uma execução em andamento.
func (s *CampaignRunService) RunOnce(ctx context.Context) (RunReport, error) {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		return RunReport{}, ErrRunInProgress
	}
	s.runRunning = true
	s.lastStartedAt = time.Now()
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.runRunning = false
		s.runMutex.Unlock()
	}()

	runID, err := utils.GenerateRunID()
	if err != nil {
		return RunReport{}, fmt.Errorf("scheduler: generate run id: %w", err)
	}

	accounts, err := s.accounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para execução")
		return RunReport{}, err
	}
	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta encontrada para execução")
	}

	loop := NewAccountLoop(s.store, s.handlers, s.recorder, s.publisher, s.config.SleepInterval, runID)
	loop.sleep = s.sleep

	logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"accounts": len(accounts),
	}).Info("Iniciando execução de campanhas")

	report := s.dispatcher.Run(ctx, runID, accounts, loop.Run, loop.Finalize)

	s.runMutex.Lock()
	s.lastCompletedAt = time.Now()
	s.lastReport = &report
	s.runMutex.Unlock()

	return report, nil
}

// TriggerManualSync inicia uma execução em segundo plano. Devolve false se já
// houver uma em andamento.
func (s *CampaignRunService) TriggerManualSync(ctx context.Context) bool {
	s.runMutex.Lock()
	running := s.runRunning
	s.runMutex.Unlock()

	if running {
		logrus.Info("Execução de campanhas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando execução manual de campanhas")
	go func() {
		if _, err := s.RunOnce(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).Warn("Execução manual não concluída")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *CampaignRunService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"max_accounts":      s.config.Dispatcher.MaxAccounts,
		"loop_budget":       s.config.Dispatcher.LoopBudget.String(),
		"finalize_budget":   s.config.Dispatcher.FinalizeBudget.String(),
		"running":           s.runRunning,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_report":       s.lastReport,
	}
}

// LastAccounts devolve as contas da última execução concluída
func (s *CampaignRunService) LastAccounts() []string {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.lastReport == nil {
		return nil
	}
	return append([]string(nil), s.lastReport.Accounts...)
}

func (s *CampaignRunService) accounts(ctx context.Context) ([]string, error) {
	if len(s.config.Accounts) > 0 {
		return s.config.Accounts, nil
	}
	return DiscoverAccounts(ctx, s.store)
}

// DiscoverAccounts devolve os account ids distintos da tabela na ordem em que
// aparecem pela primeira vez
func DiscoverAccounts(ctx context.Context, store rowstore.Store) ([]string, error) {
	rows, err := store.AccountIDs(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]string, 0)
	seen := map[string]bool{}
	for _, row := range rows {
		if row.AccountID == "" || seen[row.AccountID] {
			continue
		}
		seen[row.AccountID] = true
		accounts = append(accounts, row.AccountID)
	}
	return accounts, nil
}
