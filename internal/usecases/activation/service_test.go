package activation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/mocks"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/sandbox"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Cutover_SwapsToPrefixedAds(t *testing.T) {
	ctx := context.Background()
	platform := sandbox.New()
	for _, name := range []string{"Old1", "Old2", "Old3"} {
		platform.AddAd("111", "10", name, domain.AdTypeVideo, domain.EntityEnabled)
	}
	platform.AddAd("111", "10", "Promo_A", domain.AdTypeVideo, domain.EntityPaused)
	platform.AddAd("111", "10", "Promo_B", domain.AdTypeVideo, domain.EntityPaused)
	platform.AddAd("111", "10", "Legacy", domain.AdTypeVideo, domain.EntityPaused)
	platform.AddAd("111", "20", "Banner", domain.AdTypeImage, domain.EntityEnabled)

	require.NoError(t, NewService(platform, "111", domain.AdTypeVideo).Cutover(ctx, "Promo_"))

	statuses := map[string]domain.EntityStatus{}
	for _, ad := range platform.Ads("111") {
		statuses[ad.Name] = ad.Status
	}
	assert.Equal(t, map[string]domain.EntityStatus{
		"Banner":  domain.EntityEnabled,
		"Legacy":  domain.EntityPaused,
		"Old1":    domain.EntityPaused,
		"Old2":    domain.EntityPaused,
		"Old3":    domain.EntityPaused,
		"Promo_A": domain.EntityEnabled,
		"Promo_B": domain.EntityEnabled,
	}, statuses)
}

func TestService_Cutover(t *testing.T) {
	ctx := context.Background()
	oldAd := domain.Ad{ID: "1", Name: "Old1", Type: domain.AdTypeVideo, Status: domain.EntityEnabled}
	promoA := domain.Ad{ID: "2", Name: "Promo_A", Type: domain.AdTypeVideo, Status: domain.EntityPaused}
	promoB := domain.Ad{ID: "3", Name: "Promo_B", Type: domain.AdTypeVideo, Status: domain.EntityPaused}
	enabledFilter := domain.AdFilter{Type: domain.AdTypeVideo, Status: domain.EntityEnabled}
	pausedFilter := domain.AdFilter{Type: domain.AdTypeVideo, Status: domain.EntityPaused, NamePrefix: "Promo_"}

	tests := []struct {
		name     string
		setup    func(mockAds *mocks.MockAdsIntegrator)
		validate func(t *testing.T, err error)
	}{
		{
			name: "pausa antes de ativar",
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				gomock.InOrder(
					mockAds.EXPECT().ListAds(gomock.Any(), "111", enabledFilter).Return([]domain.Ad{oldAd}, nil),
					mockAds.EXPECT().SetAdStatus(gomock.Any(), "111", oldAd, domain.EntityPaused).Return(nil),
					mockAds.EXPECT().ListAds(gomock.Any(), "111", pausedFilter).Return([]domain.Ad{promoA, promoB}, nil),
					mockAds.EXPECT().SetAdStatus(gomock.Any(), "111", promoA, domain.EntityEnabled).Return(nil),
					mockAds.EXPECT().SetAdStatus(gomock.Any(), "111", promoB, domain.EntityEnabled).Return(nil),
				)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "falha ao pausar interrompe antes de qualquer ativação",
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				mockAds.EXPECT().ListAds(gomock.Any(), "111", enabledFilter).Return([]domain.Ad{oldAd}, nil)
				mockAds.EXPECT().SetAdStatus(gomock.Any(), "111", oldAd, domain.EntityPaused).Return(errors.New("permission denied"))
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "pause ad Old1")
			},
		},
		{
			name: "falha ao ativar um anúncio não impede os demais",
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				mockAds.EXPECT().ListAds(gomock.Any(), "111", enabledFilter).Return(nil, nil)
				mockAds.EXPECT().ListAds(gomock.Any(), "111", pausedFilter).Return([]domain.Ad{promoA, promoB}, nil)
				mockAds.EXPECT().SetAdStatus(gomock.Any(), "111", promoA, domain.EntityEnabled).Return(errors.New("policy"))
				mockAds.EXPECT().SetAdStatus(gomock.Any(), "111", promoB, domain.EntityEnabled).Return(nil)
			},
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "enable ad Promo_A")
				assert.NotContains(t, err.Error(), "Promo_B")
			},
		},
		{
			name: "erro ao listar anúncios ativos",
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				mockAds.EXPECT().ListAds(gomock.Any(), "111", enabledFilter).Return(nil, errors.New("unavailable"))
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "list enabled ads")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAds := mocks.NewMockAdsIntegrator(ctrl)
			tt.setup(mockAds)

			tt.validate(t, NewService(mockAds, "111", domain.AdTypeVideo).Cutover(ctx, "Promo_"))
		})
	}
}

func TestService_Cutover_RequiresAccount(t *testing.T) {
	err := NewService(sandbox.New(), "", domain.AdTypeVideo).Cutover(context.Background(), "Promo_")
	assert.Error(t, err)
}

func TestService_Cutover_RejectsBlankPrefix(t *testing.T) {
	for _, prefix := range []string{"", "   "} {
		ctrl := gomock.NewController(t)
		mockAds := mocks.NewMockAdsIntegrator(ctrl)
		mockAds.EXPECT().ListAds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		mockAds.EXPECT().SetAdStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := NewService(mockAds, "111", domain.AdTypeVideo).Cutover(context.Background(), prefix)
		assert.ErrorIs(t, err, ErrMissingPrefix)
		ctrl.Finish()
	}
}
