package handling

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/targeting"
)

// Handlers implementa as ações de cada status acionável. Cada handler trabalha
// sobre uma cópia do registro e só a publica quando termina sem erro.
type Handlers struct {
	ads     googleads.AdsIntegrator
	targets targeting.Updater
}

func NewHandlers(ads googleads.AdsIntegrator, targets targeting.Updater) *Handlers {
	if targets == nil {
		targets = targeting.NewService(ads)
	}
	return &Handlers{ads: ads, targets: targets}
}

// Off pausa os anúncios de vídeo do ad group e encerra a linha
func (h *Handlers) Off(ctx context.Context, customerID string, record *domain.WorkRecord) error {
	updated := *record

	if err := h.pauseVideoAds(ctx, customerID, updated.Ads.CampaignName, updated.Ads.AdGroupName); err != nil {
		return err
	}

	updated.Ads.AdName = ""
	updated.Ads.AdGroupName = ""
	updated.GeneratedVideo = ""
	updated.Status = domain.StatusDone

	*record = updated
	return nil
}

// PriceChanged pausa os anúncios de vídeo mantendo o ad group na linha
func (h *Handlers) PriceChanged(ctx context.Context, customerID string, record *domain.WorkRecord) error {
	updated := *record

	if err := h.pauseVideoAds(ctx, customerID, updated.Ads.CampaignName, updated.Ads.AdGroupName); err != nil {
		return err
	}

	updated.Ads.AdName = ""
	updated.Status = domain.StatusPaused

	*record = updated
	return nil
}

func (h *Handlers) VideoReady(ctx context.Context, customerID string, record *domain.WorkRecord) error {
	updated := *record
	adGroupName := AdGroupName(updated.Video.BaseVideo, updated.GeneratedVideo)

	if err := h.targets.SetTargets(ctx, customerID, updated.Ads.CampaignName, updated.Ads.TargetLocation); err != nil {
		return err
	}

	campaign, err := h.campaign(ctx, customerID, updated.Ads.CampaignName, domain.CampaignTypeVideo)
	if err != nil {
		return err
	}

	adGroup, err := h.createOrEnableAdGroup(ctx, customerID, *campaign, adGroupName, updated.Ads.AdGroupType)
	if err != nil {
		return err
	}
	updated.Ads.AdGroupName = adGroupName

	if err := h.attachAudiences(ctx, customerID, *adGroup, updated.Ads.AudienceName); err != nil {
		return err
	}

	ad, err := h.createOrEnableAd(ctx, customerID, *adGroup, domain.AdTypeVideo, func(name string) (*domain.Ad, error) {
		return h.ads.CreateVideoAd(ctx, customerID, *adGroup, domain.VideoAdSpec{
			Name:         name,
			VideoID:      updated.GeneratedVideo,
			URL:          updated.Ads.URL,
			CallToAction: updated.Ads.CallToAction,
		})
	})
	if err != nil {
		return err
	}
	if ad == nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"video":       updated.GeneratedVideo,
		}).Warn("handling: vídeo não vinculado, verifique o id do YouTube")
		return nil
	}

	updated.Ads.AdName = ad.Name
	updated.Status = domain.StatusRunning

	*record = updated
	return nil
}

// ImageReady segue o fluxo de vídeo com um ad group de display e um anúncio de
// imagem. GeneratedVideo carrega o id do asset de imagem.
func (h *Handlers) ImageReady(ctx context.Context, customerID string, record *domain.WorkRecord) error {
	updated := *record
	adGroupName := AdGroupName(updated.Video.BaseVideo, updated.GeneratedVideo)

	if err := h.targets.SetTargets(ctx, customerID, updated.Ads.CampaignName, updated.Ads.TargetLocation); err != nil {
		return err
	}

	campaign, err := h.campaign(ctx, customerID, updated.Ads.CampaignName, domain.CampaignTypeAny)
	if err != nil {
		return err
	}

	adGroup, err := h.createOrEnableAdGroup(ctx, customerID, *campaign, adGroupName, domain.AdGroupTypeDisplay)
	if err != nil {
		return err
	}
	updated.Ads.AdGroupName = adGroupName

	if err := h.attachAudiences(ctx, customerID, *adGroup, updated.Ads.AudienceName); err != nil {
		return err
	}

	ad, err := h.createOrEnableAd(ctx, customerID, *adGroup, domain.AdTypeImage, func(name string) (*domain.Ad, error) {
		return h.ads.CreateImageAd(ctx, customerID, *adGroup, domain.ImageAdSpec{
			Name:    name,
			ImageID: updated.GeneratedVideo,
			URL:     updated.Ads.URL,
		})
	})
	if err != nil {
		return err
	}
	if ad == nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"image":       updated.GeneratedVideo,
		}).Warn("handling: imagem não vinculada, verifique o asset")
		return nil
	}

	updated.Ads.AdName = ad.Name
	updated.Status = domain.StatusRunning

	*record = updated
	return nil
}

// AdGroupName monta o nome do ad group a partir do vídeo base e do gerado
func AdGroupName(baseVideo, generated string) string {
	return baseVideo + "-" + strings.ReplaceAll(generated, ",", "-")
}

func (h *Handlers) campaign(ctx context.Context, customerID, name string, campaignType domain.CampaignType) (*domain.Campaign, error) {
	campaign, err := h.ads.FindCampaign(ctx, customerID, name, campaignType)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, fmt.Errorf("%w: campaign %q", ErrNotResolved, name)
	}
	return campaign, nil
}

// pauseVideoAds pausa os anúncios de vídeo ativos do ad group. Campanha ou ad
// group ausentes não são erro.
func (h *Handlers) pauseVideoAds(ctx context.Context, customerID, campaignName, adGroupName string) error {
	campaign, err := h.ads.FindCampaign(ctx, customerID, campaignName, domain.CampaignTypeVideo)
	if err != nil {
		return err
	}
	var adGroup *domain.AdGroup
	if campaign != nil {
		adGroup, err = h.ads.FindAdGroup(ctx, customerID, *campaign, adGroupName)
		if err != nil {
			return err
		}
	}
	if adGroup == nil {
		logrus.WithFields(logrus.Fields{
			"customer_id":   customerID,
			"campaign_name": campaignName,
			"ad_group_name": adGroupName,
		}).Warn("handling: ad group de vídeo não encontrado")
		return nil
	}

	ads, err := h.ads.ListAds(ctx, customerID, domain.AdFilter{
		Type:      domain.AdTypeVideo,
		Status:    domain.EntityEnabled,
		AdGroupID: adGroup.ID,
	})
	if err != nil {
		return err
	}
	for _, ad := range ads {
		if err := h.ads.SetAdStatus(ctx, customerID, ad, domain.EntityPaused); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"ad":          ad.Name,
		}).Info("handling: anúncio de vídeo pausado")
	}
	return nil
}

func (h *Handlers) createOrEnableAdGroup(ctx context.Context, customerID string, campaign domain.Campaign, name, adGroupType string) (*domain.AdGroup, error) {
	adGroup, err := h.ads.FindAdGroup(ctx, customerID, campaign, name)
	if err != nil {
		return nil, err
	}

	if adGroup != nil {
		if err := h.ads.SetAdGroupStatus(ctx, customerID, *adGroup, domain.EntityEnabled); err != nil {
			return nil, err
		}
		adGroup.Status = domain.EntityEnabled
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"ad_group":    adGroup.Name,
			"type":        adGroup.Type,
		}).Info("handling: ad group existente reativado")
		return adGroup, nil
	}

	adGroup, err = h.ads.CreateAdGroup(ctx, customerID, campaign, name, adGroupType)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"customer_id": customerID,
		"ad_group":    adGroup.Name,
		"type":        adGroup.Type,
	}).Info("handling: ad group criado")
	return adGroup, nil
}

// attachAudiences vincula cada público da lista separada por vírgulas. Nomes
// sem correspondência ou ambíguos são ignorados.
func (h *Handlers) attachAudiences(ctx context.Context, customerID string, adGroup domain.AdGroup, audienceNames string) error {
	if strings.TrimSpace(audienceNames) == "" {
		return nil
	}

	for _, name := range strings.Split(audienceNames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		audiences, err := h.ads.FindAudiences(ctx, customerID, name)
		if err != nil {
			return err
		}

		entry := logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"ad_group":    adGroup.Name,
			"audience":    name,
		})
		switch len(audiences) {
		case 0:
			entry.Warn("handling: público não encontrado")
			continue
		case 1:
		default:
			entry.WithField("matches", len(audiences)).Warn("handling: mais de um público com o mesmo nome")
			continue
		}

		if err := h.ads.AttachAudience(ctx, customerID, adGroup, audiences[0]); err != nil {
			return err
		}
		entry.Info("handling: público vinculado ao ad group")
	}
	return nil
}

// createOrEnableAd usa o nome "Ad <n+1>", n sendo a quantidade de anúncios do
// tipo no ad group. Um anúncio com esse nome já existente é reativado.
func (h *Handlers) createOrEnableAd(
	ctx context.Context,
	customerID string,
	adGroup domain.AdGroup,
	adType domain.AdType,
	create func(name string) (*domain.Ad, error),
) (*domain.Ad, error) {
	existing, err := h.ads.ListAds(ctx, customerID, domain.AdFilter{Type: adType, AdGroupID: adGroup.ID})
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Ad %d", len(existing)+1)
	for _, ad := range existing {
		if ad.Name != name {
			continue
		}
		if err := h.ads.SetAdStatus(ctx, customerID, ad, domain.EntityEnabled); err != nil {
			return nil, err
		}
		ad.Status = domain.EntityEnabled
		return &ad, nil
	}

	return create(name)
}
