package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/database"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/events"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/heartbeat"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/sandbox"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/repository"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/rowstore"
	"github.com/vfg2006/campaign-orchestrator/internal/scheduler"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/activation"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/bulkupload"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/handling"
)

type rowTable interface {
	rowstore.Store
	rowstore.Inserter
}

// app agrupa as dependências montadas a partir da configuração
type app struct {
	cfg       *config.Config
	rows      rowTable
	ads       googleads.AdsIntegrator
	registry  *handling.Registry
	recorder  heartbeat.Recorder
	publisher events.Publisher

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	rows, err := a.openRows(ctx)
	if err != nil {
		return nil, err
	}
	a.rows = rows

	a.ads = a.openAds(ctx)

	a.registry = handling.NewDefaultRegistry(handling.NewHandlers(a.ads, nil))
	if err := a.registry.Validate(); err != nil {
		a.Close()
		return nil, err
	}

	a.recorder = heartbeat.NewRecorder(cfg.Heartbeat.RedisAddr, cfg.Heartbeat.Prefix, cfg.Heartbeat.TTL)
	a.closers = append(a.closers, a.recorder.Close)

	a.publisher = events.NewPublisher(cfg.Events.KafkaBroker, cfg.Events.KafkaTopic)
	a.closers = append(a.closers, a.publisher.Close)

	return a, nil
}

// openRows abre a tabela de trabalho no banco configurado
func (a *app) openRows(ctx context.Context) (rowTable, error) {
	if a.cfg.Database.Driver == "memory" {
		logrus.Warn("Tabela de trabalho em memória: as linhas não sobrevivem ao processo")
		return rowstore.NewMemoryStore(nil, nil), nil
	}

	if a.cfg.Database.Migrate {
		if err := database.Migrate(a.cfg.Database); err != nil {
			return nil, err
		}
	}

	conn, err := database.NewConnection(ctx, a.cfg.Database)
	if err != nil {
		logrus.WithError(err).Error("Erro ao conectar ao banco de dados")
		return nil, err
	}
	a.closers = append(a.closers, conn.Close)

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de dados estabelecida com sucesso")

	return repository.NewWorkRowRepository(conn, conn.Driver(), a.cfg.Database.Table), nil
}

// openAds devolve o cliente da API do Google Ads ou a plataforma em memória
func (a *app) openAds(ctx context.Context) googleads.AdsIntegrator {
	if a.cfg.GoogleAds.DryRun {
		logrus.Warn("GOOGLE_ADS_DRY_RUN ativo: nenhuma chamada real será feita à plataforma")
		return sandbox.New()
	}

	tokenManager := adsclient.NewTokenManager(a.cfg, nil)
	go tokenManager.StartAutoRefresh(ctx)
	a.closers = append(a.closers, func() error {
		tokenManager.StopAutoRefresh()
		return nil
	})

	return googleads.New(a.cfg, adsclient.NewClient(a.cfg, tokenManager))
}

func (a *app) campaignRuns() *scheduler.CampaignRunService {
	return scheduler.NewCampaignRunService(a.rows, a.registry, a.recorder, a.publisher, a.cfg)
}

func (a *app) uploader() bulkupload.Orchestrator {
	return bulkupload.NewService(a.ads, nil, bulkupload.SettingsFromConfig(a.cfg), nil)
}

func (a *app) activator() activation.Activator {
	return activation.NewService(a.ads, a.cfg.Activation.AccountID, domain.AdType(a.cfg.Activation.AdType))
}

// Close libera as conexões na ordem inversa de abertura
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
