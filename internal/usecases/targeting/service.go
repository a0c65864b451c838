package targeting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

const targetSeparator = ";"

var ErrInvalidLocation = errors.New("targeting: invalid location id")

// Updater reescreve o conjunto de localizações de uma campanha
type Updater interface {
	SetTargets(ctx context.Context, customerID, campaignName, targetList string) error
}

type Service struct {
	ads googleads.AdsIntegrator
}

func NewService(ads googleads.AdsIntegrator) Updater {
	return &Service{ads: ads}
}

// SetTargets substitui todas as localizações da campanha pelas da lista.
// Campanha não encontrada não é erro: nada é alterado.
func (s *Service) SetTargets(ctx context.Context, customerID, campaignName, targetList string) error {
	locations, err := ParseTargets(targetList)
	if err != nil {
		return err
	}

	campaign, err := s.resolveCampaign(ctx, customerID, campaignName)
	if err != nil {
		return err
	}
	if campaign == nil {
		logrus.WithFields(logrus.Fields{
			"customer_id":   customerID,
			"campaign_name": campaignName,
		}).Warn("targeting: campanha não encontrada, alvos mantidos")
		return nil
	}

	current, err := s.ads.ListLocationTargets(ctx, customerID, *campaign)
	if err != nil {
		return fmt.Errorf("targeting: list targets of %q: %w", campaignName, err)
	}

	for _, target := range current {
		if err := s.ads.RemoveLocationTarget(ctx, customerID, target); err != nil {
			return fmt.Errorf("targeting: remove location %d: %w", target.LocationID, err)
		}
	}

	for _, locationID := range locations {
		if err := s.ads.AddLocationTarget(ctx, customerID, *campaign, locationID); err != nil {
			return fmt.Errorf("targeting: add location %d: %w", locationID, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"customer_id":   customerID,
		"campaign_name": campaignName,
		"removed":       len(current),
		"added":         len(locations),
	}).Info("targeting: alvos da campanha substituídos")

	return nil
}

// resolveCampaign procura primeiro entre as campanhas de vídeo
func (s *Service) resolveCampaign(ctx context.Context, customerID, campaignName string) (*domain.Campaign, error) {
	for _, campaignType := range []domain.CampaignType{domain.CampaignTypeVideo, domain.CampaignTypeAny} {
		campaign, err := s.ads.FindCampaign(ctx, customerID, campaignName, campaignType)
		if err != nil {
			return nil, fmt.Errorf("targeting: find campaign %q: %w", campaignName, err)
		}
		if campaign != nil {
			return campaign, nil
		}
	}
	return nil, nil
}

// ParseTargets separa a lista por ";", ignora entradas vazias e converte cada
// uma em id de localização. Um id inválido falha a lista inteira.
func ParseTargets(targetList string) ([]int64, error) {
	locations := make([]int64, 0)
	for _, part := range strings.Split(targetList, targetSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, part)
		}
		locations = append(locations, id)
	}
	return locations, nil
}
