package bulkupload

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrSettleTimeout = errors.New("bulkupload: job did not settle in time")
	ErrJobFailed     = errors.New("bulkupload: job failed")
)

type SettleMode string

const (
	SettleFixed SettleMode = "fixed"
	SettlePoll  SettleMode = "poll"
)

const (
	pollBackoffMultiplier = 2.0
	maxPollDelay          = time.Minute
)

// Orchestrator envia as três etapas do upload em massa em ordem
type Orchestrator interface {
	RunUploadPipeline(ctx context.Context) error
}

// SourceLoader lê as operações de uma etapa
type SourceLoader interface {
	Load(ctx context.Context, source string) ([]map[string]any, error)
}

// Sleeper bloqueia por d ou até o contexto ser cancelado
type Sleeper func(ctx context.Context, d time.Duration) error

type Settings struct {
	CustomerID     string
	Sources        map[domain.BulkStage]string
	Mode           SettleMode
	SettleDuration time.Duration
	PollInterval   time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		CustomerID: strings.ReplaceAll(strings.TrimSpace(cfg.BulkUpload.AccountID), "-", ""),
		Sources: map[domain.BulkStage]string{
			domain.BulkStageCampaigns: cfg.BulkUpload.CampaignsSource,
			domain.BulkStageAdGroups:  cfg.BulkUpload.AdGroupsSource,
			domain.BulkStageAds:       cfg.BulkUpload.AdsSource,
		},
		Mode:           SettleMode(cfg.BulkUpload.SettleMode),
		SettleDuration: cfg.BulkUpload.SettleDuration,
		PollInterval:   cfg.BulkUpload.PollInterval,
	}
}

type Service struct {
	ads      googleads.AdsIntegrator
	loader   SourceLoader
	settings Settings
	sleep    Sleeper
}

func NewService(ads googleads.AdsIntegrator, loader SourceLoader, settings Settings, sleep Sleeper) Orchestrator {
	if loader == nil {
		loader = FileLoader{}
	}
	if sleep == nil {
		sleep = SleepContext
	}
	return &Service{
		ads:      ads,
		loader:   loader,
		settings: settings,
		sleep:    sleep,
	}
}

// RunUploadPipeline submete campaigns, ad_groups e ads, aguardando a
// acomodação entre etapas. Uma falha interrompe as etapas seguintes.
func (s *Service) RunUploadPipeline(ctx context.Context) error {
	if s.settings.CustomerID == "" {
		return errors.New("bulkupload: BULK_UPLOAD_ACCOUNT_ID não configurado")
	}

	startTime := time.Now()
	for i, stage := range domain.BulkStages {
		job, err := s.submit(ctx, stage)
		if err != nil {
			return err
		}

		if i == len(domain.BulkStages)-1 {
			break
		}

		if err := s.settle(ctx, job); err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": s.settings.CustomerID,
				"stage":       stage,
				"job":         job.ID,
				"error":       err.Error(),
			}).Error("bulkupload: etapa não acomodou")
			return fmt.Errorf("bulkupload: stage %s: %w", stage, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": s.settings.CustomerID,
		"duration":    time.Since(startTime).String(),
	}).Info("bulkupload: pipeline submetido")

	return nil
}

func (s *Service) submit(ctx context.Context, stage domain.BulkStage) (*domain.BulkJob, error) {
	source := s.settings.Sources[stage]
	operations, err := s.loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("bulkupload: load %s from %q: %w", stage, source, err)
	}

	job, err := s.ads.SubmitBulkUpload(ctx, s.settings.CustomerID, stage, operations)
	if err != nil {
		return nil, fmt.Errorf("bulkupload: submit %s: %w", stage, err)
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": s.settings.CustomerID,
		"stage":       stage,
		"job":         job.ID,
		"operations":  len(operations),
	}).Info("bulkupload: etapa submetida")

	return job, nil
}

func (s *Service) settle(ctx context.Context, job *domain.BulkJob) error {
	if s.settings.Mode == SettleFixed {
		return s.sleep(ctx, s.settings.SettleDuration)
	}
	return s.poll(ctx, job)
}

// poll consulta o job com backoff exponencial. O tempo de espera acumulado
// nunca passa de SettleDuration.
func (s *Service) poll(ctx context.Context, job *domain.BulkJob) error {
	var waited time.Duration

	for attempt := 0; ; attempt++ {
		current, err := s.ads.GetBulkUpload(ctx, s.settings.CustomerID, job.ID)
		switch {
		case err != nil && !googleads.IsTransient(err):
			return err
		case err != nil:
			logrus.WithError(err).WithField("job", job.ID).Warn("bulkupload: erro transitório ao consultar o job")
		case current.Status == domain.BulkJobFailed:
			return fmt.Errorf("%w: %s", ErrJobFailed, job.ID)
		case current.Settled():
			return nil
		}

		remaining := s.settings.SettleDuration - waited
		if remaining <= 0 {
			return ErrSettleTimeout
		}

		delay := backoffDelay(s.settings.PollInterval, attempt)
		if delay > remaining {
			delay = remaining
		}
		if err := s.sleep(ctx, delay); err != nil {
			return err
		}
		waited += delay
	}
}

func backoffDelay(initial time.Duration, attempt int) time.Duration {
	delay := time.Duration(float64(initial) * math.Pow(pollBackoffMultiplier, float64(attempt)))
	if delay > maxPollDelay || delay <= 0 {
		delay = maxPollDelay
	}
	return delay
}

// SleepContext dorme por d respeitando o cancelamento do contexto
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FileLoader lê um arquivo JSON com a lista de operações de mutate
type FileLoader struct{}

func (FileLoader) Load(_ context.Context, source string) ([]map[string]any, error) {
	payload, err := os.ReadFile(source)
	if err != nil {
		return nil, err
	}

	var operations []map[string]any
	if err := json.Unmarshal(payload, &operations); err != nil {
		return nil, err
	}
	return operations, nil
}
