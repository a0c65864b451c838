// Package sandbox implementa googleads.AdsIntegrator em memória. Serve ao
// modo GOOGLE_ADS_DRY_RUN e aos testes dos casos de uso.
package sandbox

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

var _ googleads.AdsIntegrator = (*Platform)(nil)

type account struct {
	campaigns   []domain.Campaign
	targets     map[string][]domain.LocationTarget
	adGroups    []domain.AdGroup
	ads         []domain.Ad
	audiences   []domain.Audience
	attachments map[string][]string
	jobs        []*domain.BulkJob
	polls       map[string]int
}

// Platform é uma plataforma de anúncios falsa com estado por conta
type Platform struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[string]*account
	failures map[string][]error

	// PollsToSettle é o número de consultas até um job ficar DONE
	PollsToSettle int
}

func New() *Platform {
	return &Platform{
		nextID:        1000,
		accounts:      map[string]*account{},
		failures:      map[string][]error{},
		PollsToSettle: 1,
	}
}

// FailNext enfileira um erro para a próxima chamada do método informado
func (p *Platform) FailNext(method string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[method] = append(p.failures[method], err)
}

func (p *Platform) AddCampaign(customerID, name string, campaignType domain.CampaignType) domain.Campaign {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.id()
	campaign := domain.Campaign{
		ID:           id,
		Name:         name,
		CustomerID:   customerID,
		Type:         campaignType,
		ResourceName: fmt.Sprintf("customers/%s/campaigns/%s", customerID, id),
	}
	acc := p.account(customerID)
	acc.campaigns = append(acc.campaigns, campaign)
	return campaign
}

func (p *Platform) AddAdGroup(customerID string, campaign domain.Campaign, name, adGroupType string, status domain.EntityStatus) domain.AdGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addAdGroup(customerID, campaign, name, adGroupType, status)
}

func (p *Platform) AddAd(customerID, adGroupID, name string, adType domain.AdType, status domain.EntityStatus) domain.Ad {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addAd(customerID, adGroupID, name, adType, status)
}

func (p *Platform) AddAudience(customerID, name string) domain.Audience {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.id()
	audience := domain.Audience{
		ID:           id,
		Name:         name,
		ResourceName: fmt.Sprintf("customers/%s/userLists/%s", customerID, id),
	}
	acc := p.account(customerID)
	acc.audiences = append(acc.audiences, audience)
	return audience
}

// Ads devolve os anúncios da conta ordenados por nome
func (p *Platform) Ads(customerID string) []domain.Ad {
	p.mu.Lock()
	defer p.mu.Unlock()

	ads := append([]domain.Ad(nil), p.account(customerID).ads...)
	sort.Slice(ads, func(i, j int) bool { return ads[i].Name < ads[j].Name })
	return ads
}

func (p *Platform) AdGroups(customerID string) []domain.AdGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.AdGroup(nil), p.account(customerID).adGroups...)
}

// LocationIDs devolve os ids de localização da campanha em ordem crescente
func (p *Platform) LocationIDs(customerID, campaignID string) []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]int64, 0)
	for _, target := range p.account(customerID).targets[campaignID] {
		ids = append(ids, target.LocationID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p *Platform) Attachments(customerID, adGroupID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.account(customerID).attachments[adGroupID]...)
}

func (p *Platform) Jobs(customerID string) []domain.BulkJob {
	p.mu.Lock()
	defer p.mu.Unlock()

	jobs := make([]domain.BulkJob, 0)
	for _, job := range p.account(customerID).jobs {
		jobs = append(jobs, *job)
	}
	return jobs
}

// SetJobStatus força o status de um job submetido
func (p *Platform) SetJobStatus(customerID, jobID string, status domain.BulkJobStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, job := range p.account(customerID).jobs {
		if job.ID == jobID {
			job.Status = status
		}
	}
}

func (p *Platform) FindCampaign(_ context.Context, customerID, name string, campaignType domain.CampaignType) (*domain.Campaign, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("FindCampaign"); err != nil {
		return nil, err
	}
	for _, campaign := range p.account(customerID).campaigns {
		if campaign.Name != name {
			continue
		}
		if campaignType != domain.CampaignTypeAny && campaign.Type != campaignType {
			continue
		}
		found := campaign
		return &found, nil
	}
	return nil, nil
}

func (p *Platform) ListLocationTargets(_ context.Context, customerID string, campaign domain.Campaign) ([]domain.LocationTarget, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("ListLocationTargets"); err != nil {
		return nil, err
	}
	return append([]domain.LocationTarget(nil), p.account(customerID).targets[campaign.ID]...), nil
}

func (p *Platform) RemoveLocationTarget(_ context.Context, customerID string, target domain.LocationTarget) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("RemoveLocationTarget"); err != nil {
		return err
	}
	acc := p.account(customerID)
	current := acc.targets[target.CampaignID]
	kept := current[:0]
	for _, t := range current {
		if t.CriterionID != target.CriterionID {
			kept = append(kept, t)
		}
	}
	acc.targets[target.CampaignID] = kept
	return nil
}

func (p *Platform) AddLocationTarget(_ context.Context, customerID string, campaign domain.Campaign, locationID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("AddLocationTarget"); err != nil {
		return err
	}
	acc := p.account(customerID)
	for _, t := range acc.targets[campaign.ID] {
		if t.LocationID == locationID {
			return nil
		}
	}
	criterionID := strconv.FormatInt(locationID, 10)
	acc.targets[campaign.ID] = append(acc.targets[campaign.ID], domain.LocationTarget{
		CampaignID:   campaign.ID,
		CriterionID:  criterionID,
		LocationID:   locationID,
		ResourceName: fmt.Sprintf("customers/%s/campaignCriteria/%s~%s", customerID, campaign.ID, criterionID),
	})
	return nil
}

func (p *Platform) ListAds(_ context.Context, customerID string, filter domain.AdFilter) ([]domain.Ad, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("ListAds"); err != nil {
		return nil, err
	}
	ads := make([]domain.Ad, 0)
	for _, ad := range p.account(customerID).ads {
		if filter.Type != "" && ad.Type != filter.Type {
			continue
		}
		if filter.Status != "" && ad.Status != filter.Status {
			continue
		}
		if filter.AdGroupID != "" && ad.AdGroupID != filter.AdGroupID {
			continue
		}
		if filter.NamePrefix != "" && !strings.HasPrefix(ad.Name, filter.NamePrefix) {
			continue
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

func (p *Platform) SetAdStatus(_ context.Context, customerID string, ad domain.Ad, status domain.EntityStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("SetAdStatus"); err != nil {
		return err
	}
	acc := p.account(customerID)
	for i := range acc.ads {
		if acc.ads[i].ID == ad.ID {
			acc.ads[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("sandbox: anúncio %s não encontrado", ad.ID)
}

func (p *Platform) FindAdGroup(_ context.Context, customerID string, campaign domain.Campaign, name string) (*domain.AdGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("FindAdGroup"); err != nil {
		return nil, err
	}
	for _, adGroup := range p.account(customerID).adGroups {
		if adGroup.CampaignID == campaign.ID && adGroup.Name == name {
			found := adGroup
			return &found, nil
		}
	}
	return nil, nil
}

func (p *Platform) CreateAdGroup(_ context.Context, customerID string, campaign domain.Campaign, name, adGroupType string) (*domain.AdGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("CreateAdGroup"); err != nil {
		return nil, err
	}
	adGroup := p.addAdGroup(customerID, campaign, name, adGroupType, domain.EntityEnabled)
	return &adGroup, nil
}

func (p *Platform) SetAdGroupStatus(_ context.Context, customerID string, adGroup domain.AdGroup, status domain.EntityStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("SetAdGroupStatus"); err != nil {
		return err
	}
	acc := p.account(customerID)
	for i := range acc.adGroups {
		if acc.adGroups[i].ID == adGroup.ID {
			acc.adGroups[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("sandbox: ad group %s não encontrado", adGroup.ID)
}

func (p *Platform) FindAudiences(_ context.Context, customerID, name string) ([]domain.Audience, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("FindAudiences"); err != nil {
		return nil, err
	}
	found := make([]domain.Audience, 0)
	for _, audience := range p.account(customerID).audiences {
		if audience.Name == name {
			found = append(found, audience)
		}
	}
	return found, nil
}

func (p *Platform) AttachAudience(_ context.Context, customerID string, adGroup domain.AdGroup, audience domain.Audience) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("AttachAudience"); err != nil {
		return err
	}
	acc := p.account(customerID)
	acc.attachments[adGroup.ID] = append(acc.attachments[adGroup.ID], audience.ID)
	return nil
}

func (p *Platform) CreateVideoAd(_ context.Context, customerID string, adGroup domain.AdGroup, spec domain.VideoAdSpec) (*domain.Ad, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("CreateVideoAd"); err != nil {
		return nil, err
	}
	switch adGroup.Type {
	case domain.AdGroupTypeInStream, domain.AdGroupTypeNonSkippableInStream,
		domain.AdGroupTypeInDisplay, domain.AdGroupTypeBumper:
	default:
		return nil, fmt.Errorf("sandbox: tipo de ad group sem anúncio de vídeo: %q", adGroup.Type)
	}
	ad := p.addAd(customerID, adGroup.ID, spec.Name, domain.AdTypeVideo, domain.EntityEnabled)
	return &ad, nil
}

func (p *Platform) CreateImageAd(_ context.Context, customerID string, adGroup domain.AdGroup, spec domain.ImageAdSpec) (*domain.Ad, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("CreateImageAd"); err != nil {
		return nil, err
	}
	ad := p.addAd(customerID, adGroup.ID, spec.Name, domain.AdTypeImage, domain.EntityEnabled)
	return &ad, nil
}

func (p *Platform) SubmitBulkUpload(_ context.Context, customerID string, stage domain.BulkStage, operations []map[string]any) (*domain.BulkJob, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("SubmitBulkUpload"); err != nil {
		return nil, err
	}
	job := &domain.BulkJob{
		ID:         fmt.Sprintf("customers/%s/batchJobs/%s", customerID, p.id()),
		CustomerID: customerID,
		Stage:      stage,
		Status:     domain.BulkJobRunning,
	}
	acc := p.account(customerID)
	acc.jobs = append(acc.jobs, job)
	copied := *job
	return &copied, nil
}

func (p *Platform) GetBulkUpload(_ context.Context, customerID, jobID string) (*domain.BulkJob, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.failure("GetBulkUpload"); err != nil {
		return nil, err
	}
	acc := p.account(customerID)
	for _, job := range acc.jobs {
		if job.ID != jobID {
			continue
		}
		acc.polls[jobID]++
		if job.Status == domain.BulkJobRunning && p.PollsToSettle > 0 && acc.polls[jobID] >= p.PollsToSettle {
			job.Status = domain.BulkJobDone
		}
		copied := *job
		return &copied, nil
	}
	return nil, fmt.Errorf("sandbox: job %s não encontrado", jobID)
}

func (p *Platform) addAdGroup(customerID string, campaign domain.Campaign, name, adGroupType string, status domain.EntityStatus) domain.AdGroup {
	id := p.id()
	adGroup := domain.AdGroup{
		ID:           id,
		Name:         name,
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Type:         adGroupType,
		Status:       status,
		ResourceName: fmt.Sprintf("customers/%s/adGroups/%s", customerID, id),
	}
	acc := p.account(customerID)
	acc.adGroups = append(acc.adGroups, adGroup)
	return adGroup
}

func (p *Platform) addAd(customerID, adGroupID, name string, adType domain.AdType, status domain.EntityStatus) domain.Ad {
	id := p.id()
	ad := domain.Ad{
		ID:           id,
		Name:         name,
		AdGroupID:    adGroupID,
		Type:         adType,
		Status:       status,
		ResourceName: fmt.Sprintf("customers/%s/adGroupAds/%s~%s", customerID, adGroupID, id),
	}
	acc := p.account(customerID)
	acc.ads = append(acc.ads, ad)
	return ad
}

func (p *Platform) account(customerID string) *account {
	acc, ok := p.accounts[customerID]
	if !ok {
		acc = &account{
			targets:     map[string][]domain.LocationTarget{},
			attachments: map[string][]string{},
			polls:       map[string]int{},
		}
		p.accounts[customerID] = acc
	}
	return acc
}

func (p *Platform) failure(method string) error {
	queue := p.failures[method]
	if len(queue) == 0 {
		return nil
	}
	p.failures[method] = queue[1:]
	return queue[0]
}

func (p *Platform) id() string {
	p.nextID++
	return strconv.FormatInt(p.nextID, 10)
}
