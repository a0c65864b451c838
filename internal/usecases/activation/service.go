package activation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

// ErrMissingPrefix impede que a troca reative todos os anúncios pausados
var ErrMissingPrefix = errors.New("activation: prefixo dos anúncios obrigatório")

// Activator troca os anúncios ativos de uma conta por um novo lote
type Activator interface {
	Cutover(ctx context.Context, namePrefix string) error
}

type Service struct {
	ads        googleads.AdsIntegrator
	customerID string
	adType     domain.AdType
}

func NewService(ads googleads.AdsIntegrator, customerID string, adType domain.AdType) Activator {
	if adType == "" {
		adType = domain.AdTypeVideo
	}
	return &Service{
		ads:        ads,
		customerID: customerID,
		adType:     adType,
	}
}

// Cutover pausa todos os anúncios ativos do tipo configurado e só então ativa os
// anúncios pausados cujo nome começa com namePrefix. Uma falha ao pausar
// interrompe a troca antes de qualquer ativação.
func (s *Service) Cutover(ctx context.Context, namePrefix string) error {
	if s.customerID == "" {
		return errors.New("activation: ACTIVATION_ACCOUNT_ID não configurado")
	}
	if strings.TrimSpace(namePrefix) == "" {
		return ErrMissingPrefix
	}

	enabled, err := s.ads.ListAds(ctx, s.customerID, domain.AdFilter{Type: s.adType, Status: domain.EntityEnabled})
	if err != nil {
		return fmt.Errorf("activation: list enabled ads: %w", err)
	}

	for _, ad := range enabled {
		if err := s.ads.SetAdStatus(ctx, s.customerID, ad, domain.EntityPaused); err != nil {
			return fmt.Errorf("activation: pause ad %s: %w", ad.Name, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": s.customerID,
		"paused":      len(enabled),
	}).Info("activation: anúncios ativos pausados")

	candidates, err := s.ads.ListAds(ctx, s.customerID, domain.AdFilter{
		Type:       s.adType,
		Status:     domain.EntityPaused,
		NamePrefix: namePrefix,
	})
	if err != nil {
		return fmt.Errorf("activation: list paused ads: %w", err)
	}

	var errs []error
	activated := 0
	for _, ad := range candidates {
		if err := s.ads.SetAdStatus(ctx, s.customerID, ad, domain.EntityEnabled); err != nil {
			logrus.WithFields(logrus.Fields{
				"customer_id": s.customerID,
				"ad":          ad.Name,
				"error":       err.Error(),
			}).Error("activation: falha ao ativar anúncio")
			errs = append(errs, fmt.Errorf("activation: enable ad %s: %w", ad.Name, err))
			continue
		}
		activated++
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": s.customerID,
		"prefix":      namePrefix,
		"activated":   activated,
		"failed":      len(errs),
	}).Info("activation: troca de anúncios concluída")

	return errors.Join(errs...)
}
