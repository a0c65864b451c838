package googleads

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_integrator.go -package=mocks

// AdsIntegrator é a fronteira com a plataforma de anúncios. Buscas devolvem
// nil sem erro quando nada é encontrado.
type AdsIntegrator interface {
	FindCampaign(ctx context.Context, customerID, name string, campaignType domain.CampaignType) (*domain.Campaign, error)
	ListLocationTargets(ctx context.Context, customerID string, campaign domain.Campaign) ([]domain.LocationTarget, error)
	RemoveLocationTarget(ctx context.Context, customerID string, target domain.LocationTarget) error
	AddLocationTarget(ctx context.Context, customerID string, campaign domain.Campaign, locationID int64) error

	ListAds(ctx context.Context, customerID string, filter domain.AdFilter) ([]domain.Ad, error)
	SetAdStatus(ctx context.Context, customerID string, ad domain.Ad, status domain.EntityStatus) error

	FindAdGroup(ctx context.Context, customerID string, campaign domain.Campaign, name string) (*domain.AdGroup, error)
	CreateAdGroup(ctx context.Context, customerID string, campaign domain.Campaign, name, adGroupType string) (*domain.AdGroup, error)
	SetAdGroupStatus(ctx context.Context, customerID string, adGroup domain.AdGroup, status domain.EntityStatus) error

	FindAudiences(ctx context.Context, customerID, name string) ([]domain.Audience, error)
	AttachAudience(ctx context.Context, customerID string, adGroup domain.AdGroup, audience domain.Audience) error

	CreateVideoAd(ctx context.Context, customerID string, adGroup domain.AdGroup, spec domain.VideoAdSpec) (*domain.Ad, error)
	CreateImageAd(ctx context.Context, customerID string, adGroup domain.AdGroup, spec domain.ImageAdSpec) (*domain.Ad, error)

	SubmitBulkUpload(ctx context.Context, customerID string, stage domain.BulkStage, operations []map[string]any) (*domain.BulkJob, error)
	GetBulkUpload(ctx context.Context, customerID, jobID string) (*domain.BulkJob, error)
}

var videoAdTypes = []string{
	"VIDEO_AD",
	"VIDEO_BUMPER_AD",
	"VIDEO_NON_SKIPPABLE_IN_STREAM_AD",
	"VIDEO_TRUEVIEW_IN_STREAM_AD",
	"IN_FEED_VIDEO_AD",
	"VIDEO_RESPONSIVE_AD",
}

type Service struct {
	cfg    *config.Config
	Client adsclient.Client
}

func New(cfg *config.Config, client adsclient.Client) *Service {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Service) FindCampaign(ctx context.Context, customerID, name string, campaignType domain.CampaignType) (*domain.Campaign, error) {
	query := fmt.Sprintf(
		"SELECT campaign.resource_name, campaign.id, campaign.name, campaign.advertising_channel_type "+
			"FROM campaign WHERE campaign.name = %s AND campaign.status != 'REMOVED'",
		gaqlString(name),
	)
	if campaignType != domain.CampaignTypeAny {
		query += fmt.Sprintf(" AND campaign.advertising_channel_type = '%s'", campaignType)
	}
	query += " LIMIT 1"

	rows, err := s.Client.Search(ctx, customerID, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id":   customerID,
			"campaign_name": name,
			"error":         err.Error(),
		}).Error("googleads: erro ao buscar campanha")
		return nil, err
	}

	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}
		return &domain.Campaign{
			ID:           row.Campaign.ID,
			Name:         row.Campaign.Name,
			CustomerID:   customerID,
			Type:         domain.CampaignType(row.Campaign.AdvertisingChannelType),
			ResourceName: row.Campaign.ResourceName,
		}, nil
	}
	return nil, nil
}

func (s *Service) ListLocationTargets(ctx context.Context, customerID string, campaign domain.Campaign) ([]domain.LocationTarget, error) {
	query := fmt.Sprintf(
		"SELECT campaign_criterion.resource_name, campaign_criterion.criterion_id, campaign_criterion.location.geo_target_constant "+
			"FROM campaign_criterion WHERE campaign.id = %s AND campaign_criterion.type = 'LOCATION' AND campaign_criterion.negative = FALSE",
		campaign.ID,
	)

	rows, err := s.Client.Search(ctx, customerID, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"campaign_id": campaign.ID,
			"error":       err.Error(),
		}).Error("googleads: erro ao listar alvos de localização")
		return nil, err
	}

	targets := make([]domain.LocationTarget, 0, len(rows))
	for _, row := range rows {
		criterion := row.CampaignCriterion
		if criterion == nil || criterion.Location == nil {
			continue
		}
		locationID, err := lastSegmentInt(criterion.Location.GeoTargetConstant)
		if err != nil {
			return nil, fmt.Errorf("googleads: geo target inválido %q: %w", criterion.Location.GeoTargetConstant, err)
		}
		targets = append(targets, domain.LocationTarget{
			CampaignID:   campaign.ID,
			CriterionID:  criterion.CriterionID,
			LocationID:   locationID,
			ResourceName: criterion.ResourceName,
		})
	}
	return targets, nil
}

func (s *Service) RemoveLocationTarget(ctx context.Context, customerID string, target domain.LocationTarget) error {
	_, err := s.Client.Mutate(ctx, customerID, "campaignCriteria", []map[string]any{
		{"remove": target.ResourceName},
	})
	return err
}

func (s *Service) AddLocationTarget(ctx context.Context, customerID string, campaign domain.Campaign, locationID int64) error {
	_, err := s.Client.Mutate(ctx, customerID, "campaignCriteria", []map[string]any{
		{"create": map[string]any{
			"campaign": campaign.ResourceName,
			"location": map[string]any{
				"geoTargetConstant": fmt.Sprintf("geoTargetConstants/%d", locationID),
			},
		}},
	})
	return err
}

func (s *Service) ListAds(ctx context.Context, customerID string, filter domain.AdFilter) ([]domain.Ad, error) {
	conditions := []string{"ad_group_ad.status != 'REMOVED'"}
	switch filter.Type {
	case domain.AdTypeVideo:
		conditions = append(conditions, fmt.Sprintf("ad_group_ad.ad.type IN (%s)", gaqlList(videoAdTypes)))
	case domain.AdTypeImage:
		conditions = append(conditions, "ad_group_ad.ad.type = 'IMAGE_AD'")
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ad_group_ad.status = '%s'", filter.Status))
	}
	if filter.AdGroupID != "" {
		conditions = append(conditions, fmt.Sprintf("ad_group.id = %s", filter.AdGroupID))
	}
	if filter.NamePrefix != "" {
		conditions = append(conditions, fmt.Sprintf("ad_group_ad.ad.name LIKE %s", gaqlString(escapeLike(filter.NamePrefix)+"%")))
	}

	query := "SELECT ad_group_ad.resource_name, ad_group_ad.status, ad_group_ad.ad_group, " +
		"ad_group_ad.ad.id, ad_group_ad.ad.name, ad_group_ad.ad.type FROM ad_group_ad WHERE " +
		strings.Join(conditions, " AND ")

	rows, err := s.Client.Search(ctx, customerID, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"error":       err.Error(),
		}).Error("googleads: erro ao listar anúncios")
		return nil, err
	}

	ads := make([]domain.Ad, 0, len(rows))
	for _, row := range rows {
		if row.AdGroupAd == nil {
			continue
		}
		ad := domain.Ad{
			ID:           row.AdGroupAd.Ad.ID,
			Name:         row.AdGroupAd.Ad.Name,
			AdGroupID:    lastSegment(row.AdGroupAd.AdGroup),
			Type:         adTypeFrom(row.AdGroupAd.Ad.Type),
			Status:       domain.EntityStatus(row.AdGroupAd.Status),
			ResourceName: row.AdGroupAd.ResourceName,
		}
		if filter.NamePrefix != "" && !strings.HasPrefix(ad.Name, filter.NamePrefix) {
			continue
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

func (s *Service) SetAdStatus(ctx context.Context, customerID string, ad domain.Ad, status domain.EntityStatus) error {
	_, err := s.Client.Mutate(ctx, customerID, "adGroupAds", []map[string]any{
		{
			"update":     map[string]any{"resourceName": ad.ResourceName, "status": string(status)},
			"updateMask": "status",
		},
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"ad_id":       ad.ID,
			"status":      status,
			"error":       err.Error(),
		}).Error("googleads: erro ao atualizar status do anúncio")
	}
	return err
}

func (s *Service) FindAdGroup(ctx context.Context, customerID string, campaign domain.Campaign, name string) (*domain.AdGroup, error) {
	query := fmt.Sprintf(
		"SELECT ad_group.resource_name, ad_group.id, ad_group.name, ad_group.status, ad_group.type, ad_group.campaign "+
			"FROM ad_group WHERE campaign.id = %s AND ad_group.name = %s AND ad_group.status != 'REMOVED' LIMIT 1",
		campaign.ID, gaqlString(name),
	)

	rows, err := s.Client.Search(ctx, customerID, query)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.AdGroup == nil {
			continue
		}
		return adGroupFrom(row.AdGroup, campaign), nil
	}
	return nil, nil
}

func (s *Service) CreateAdGroup(ctx context.Context, customerID string, campaign domain.Campaign, name, adGroupType string) (*domain.AdGroup, error) {
	names, err := s.Client.Mutate(ctx, customerID, "adGroups", []map[string]any{
		{"create": map[string]any{
			"name":     name,
			"campaign": campaign.ResourceName,
			"type":     adGroupType,
			"status":   string(domain.EntityEnabled),
		}},
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id":   customerID,
			"campaign_id":   campaign.ID,
			"ad_group_name": name,
			"error":         err.Error(),
		}).Error("googleads: erro ao criar grupo de anúncios")
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("googleads: criação do ad group %q sem resultado", name)
	}

	return &domain.AdGroup{
		ID:           lastSegment(names[0]),
		Name:         name,
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Type:         adGroupType,
		Status:       domain.EntityEnabled,
		ResourceName: names[0],
	}, nil
}

func (s *Service) SetAdGroupStatus(ctx context.Context, customerID string, adGroup domain.AdGroup, status domain.EntityStatus) error {
	_, err := s.Client.Mutate(ctx, customerID, "adGroups", []map[string]any{
		{
			"update":     map[string]any{"resourceName": adGroup.ResourceName, "status": string(status)},
			"updateMask": "status",
		},
	})
	return err
}

func (s *Service) FindAudiences(ctx context.Context, customerID, name string) ([]domain.Audience, error) {
	query := fmt.Sprintf(
		"SELECT user_list.resource_name, user_list.id, user_list.name FROM user_list WHERE user_list.name = %s",
		gaqlString(name),
	)

	rows, err := s.Client.Search(ctx, customerID, query)
	if err != nil {
		return nil, err
	}

	audiences := make([]domain.Audience, 0, len(rows))
	for _, row := range rows {
		if row.UserList == nil {
			continue
		}
		audiences = append(audiences, domain.Audience{
			ID:           row.UserList.ID,
			Name:         row.UserList.Name,
			ResourceName: row.UserList.ResourceName,
		})
	}
	return audiences, nil
}

func (s *Service) AttachAudience(ctx context.Context, customerID string, adGroup domain.AdGroup, audience domain.Audience) error {
	_, err := s.Client.Mutate(ctx, customerID, "adGroupCriteria", []map[string]any{
		{"create": map[string]any{
			"adGroup":  adGroup.ResourceName,
			"userList": map[string]any{"userList": audience.ResourceName},
		}},
	})
	return err
}

func (s *Service) CreateVideoAd(ctx context.Context, customerID string, adGroup domain.AdGroup, spec domain.VideoAdSpec) (*domain.Ad, error) {
	assets, err := s.Client.Mutate(ctx, customerID, "assets", []map[string]any{
		{"create": map[string]any{
			"name":              spec.Name + " " + spec.VideoID,
			"youtubeVideoAsset": map[string]any{"youtubeVideoId": spec.VideoID},
		}},
	})
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("googleads: asset de vídeo %q sem resultado", spec.VideoID)
	}

	videoAd := map[string]any{"video": map[string]any{"asset": assets[0]}}
	switch adGroup.Type {
	case domain.AdGroupTypeInStream:
		videoAd["inStream"] = map[string]any{"actionButtonLabel": spec.CallToAction, "actionHeadline": spec.Name}
	case domain.AdGroupTypeNonSkippableInStream:
		videoAd["nonSkippable"] = map[string]any{"actionButtonLabel": spec.CallToAction}
	case domain.AdGroupTypeInDisplay:
		videoAd["inFeed"] = map[string]any{"headline": spec.Name, "description1": spec.CallToAction}
	case domain.AdGroupTypeBumper:
		videoAd["bumper"] = map[string]any{}
	default:
		return nil, fmt.Errorf("googleads: tipo de ad group sem anúncio de vídeo: %q", adGroup.Type)
	}

	return s.createAd(ctx, customerID, adGroup, domain.AdTypeVideo, map[string]any{
		"name":      spec.Name,
		"finalUrls": finalURLs(spec.URL),
		"videoAd":   videoAd,
	})
}

func (s *Service) CreateImageAd(ctx context.Context, customerID string, adGroup domain.AdGroup, spec domain.ImageAdSpec) (*domain.Ad, error) {
	return s.createAd(ctx, customerID, adGroup, domain.AdTypeImage, map[string]any{
		"name":      spec.Name,
		"finalUrls": finalURLs(spec.URL),
		"imageAd": map[string]any{
			"imageAsset": map[string]any{"asset": fmt.Sprintf("customers/%s/assets/%s", customerID, spec.ImageID)},
		},
	})
}

func (s *Service) createAd(ctx context.Context, customerID string, adGroup domain.AdGroup, adType domain.AdType, ad map[string]any) (*domain.Ad, error) {
	names, err := s.Client.Mutate(ctx, customerID, "adGroupAds", []map[string]any{
		{"create": map[string]any{
			"adGroup": adGroup.ResourceName,
			"status":  string(domain.EntityEnabled),
			"ad":      ad,
		}},
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"ad_group_id": adGroup.ID,
			"error":       err.Error(),
		}).Error("googleads: erro ao criar anúncio")
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("googleads: criação de anúncio sem resultado")
	}

	// customers/{cid}/adGroupAds/{adGroupId}~{adId}
	id := lastSegment(names[0])
	if i := strings.LastIndex(id, "~"); i >= 0 {
		id = id[i+1:]
	}

	name, _ := ad["name"].(string)
	return &domain.Ad{
		ID:           id,
		Name:         name,
		AdGroupID:    adGroup.ID,
		Type:         adType,
		Status:       domain.EntityEnabled,
		ResourceName: names[0],
	}, nil
}

// SubmitBulkUpload cria, alimenta e dispara um batch job sem aguardar o término
func (s *Service) SubmitBulkUpload(ctx context.Context, customerID string, stage domain.BulkStage, operations []map[string]any) (*domain.BulkJob, error) {
	resourceName, err := s.Client.CreateBatchJob(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := s.Client.AddBatchJobOperations(ctx, resourceName, operations); err != nil {
		return nil, err
	}

	if err := s.Client.RunBatchJob(ctx, resourceName); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": customerID,
		"stage":       stage,
		"job":         resourceName,
		"operations":  len(operations),
	}).Debug("googleads: batch job submetido")

	return &domain.BulkJob{
		ID:         resourceName,
		CustomerID: customerID,
		Stage:      stage,
		Status:     domain.BulkJobRunning,
	}, nil
}

func (s *Service) GetBulkUpload(ctx context.Context, customerID, jobID string) (*domain.BulkJob, error) {
	query := fmt.Sprintf(
		"SELECT batch_job.resource_name, batch_job.id, batch_job.status FROM batch_job WHERE batch_job.resource_name = %s",
		gaqlString(jobID),
	)

	rows, err := s.Client.Search(ctx, customerID, query)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.BatchJob == nil {
			continue
		}
		return &domain.BulkJob{
			ID:         jobID,
			CustomerID: customerID,
			Status:     bulkStatusFrom(row.BatchJob.Status),
		}, nil
	}
	return nil, fmt.Errorf("googleads: batch job %s não encontrado", jobID)
}

func adGroupFrom(row *adsdomain.AdGroup, campaign domain.Campaign) *domain.AdGroup {
	return &domain.AdGroup{
		ID:           row.ID,
		Name:         row.Name,
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Type:         row.Type,
		Status:       domain.EntityStatus(row.Status),
		ResourceName: row.ResourceName,
	}
}

func adTypeFrom(apiType string) domain.AdType {
	if apiType == "IMAGE_AD" {
		return domain.AdTypeImage
	}
	if strings.Contains(apiType, "VIDEO") {
		return domain.AdTypeVideo
	}
	return domain.AdType(apiType)
}

func bulkStatusFrom(apiStatus string) domain.BulkJobStatus {
	switch apiStatus {
	case "DONE":
		return domain.BulkJobDone
	case "RUNNING":
		return domain.BulkJobRunning
	case "PENDING":
		return domain.BulkJobPending
	default:
		return domain.BulkJobFailed
	}
}

func finalURLs(url string) []string {
	if url == "" {
		return nil
	}
	return []string{url}
}

func gaqlString(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}

func gaqlList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, gaqlString(v))
	}
	return strings.Join(quoted, ", ")
}

// escapeLike protege os curingas do LIKE do GAQL
func escapeLike(value string) string {
	replacer := strings.NewReplacer("[", "[[]", "%", "[%]", "_", "[_]")
	return replacer.Replace(value)
}

func lastSegment(resourceName string) string {
	if i := strings.LastIndex(resourceName, "/"); i >= 0 {
		return resourceName[i+1:]
	}
	return resourceName
}

func lastSegmentInt(resourceName string) (int64, error) {
	return strconv.ParseInt(lastSegment(resourceName), 10, 64)
}
