package bulkupload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adsdomain "github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/mocks"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/integrator/googleads/sandbox"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"go.uber.org/mock/gomock"
)

type staticLoader map[string][]map[string]any

func (l staticLoader) Load(_ context.Context, source string) ([]map[string]any, error) {
	operations, ok := l[source]
	if !ok {
		return nil, os.ErrNotExist
	}
	return operations, nil
}

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func testSettings(mode SettleMode) Settings {
	return Settings{
		CustomerID: "1234567890",
		Sources: map[domain.BulkStage]string{
			domain.BulkStageCampaigns: "campaigns.json",
			domain.BulkStageAdGroups:  "ad_groups.json",
			domain.BulkStageAds:       "ads.json",
		},
		Mode:           mode,
		SettleDuration: 300 * time.Second,
		PollInterval:   10 * time.Second,
	}
}

func testLoader() staticLoader {
	return staticLoader{
		"campaigns.json": {{"create": map[string]any{"name": "Summer"}}},
		"ad_groups.json": {{"create": map[string]any{"name": "Summer-1"}}},
		"ads.json":       {{"create": map[string]any{"name": "Ad 1"}}, {"create": map[string]any{"name": "Ad 2"}}},
	}
}

func TestService_RunUploadPipeline_FixedSettle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAds := mocks.NewMockAdsIntegrator(ctrl)
	sleeper := &recordingSleeper{}
	svc := NewService(mockAds, testLoader(), testSettings(SettleFixed), sleeper.sleep)

	gomock.InOrder(
		mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), "1234567890", domain.BulkStageCampaigns, gomock.Len(1)).
			Return(&domain.BulkJob{ID: "job-1", Stage: domain.BulkStageCampaigns}, nil),
		mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), "1234567890", domain.BulkStageAdGroups, gomock.Len(1)).
			Return(&domain.BulkJob{ID: "job-2", Stage: domain.BulkStageAdGroups}, nil),
		mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), "1234567890", domain.BulkStageAds, gomock.Len(2)).
			Return(&domain.BulkJob{ID: "job-3", Stage: domain.BulkStageAds}, nil),
	)

	require.NoError(t, svc.RunUploadPipeline(context.Background()))
	assert.Equal(t, []time.Duration{300 * time.Second, 300 * time.Second}, sleeper.waits)
}

func TestService_RunUploadPipeline_PollSettle(t *testing.T) {
	platform := sandbox.New()
	platform.PollsToSettle = 3
	sleeper := &recordingSleeper{}
	svc := NewService(platform, testLoader(), testSettings(SettlePoll), sleeper.sleep)

	require.NoError(t, svc.RunUploadPipeline(context.Background()))

	jobs := platform.Jobs("1234567890")
	require.Len(t, jobs, 3)
	assert.Equal(t, domain.BulkStageCampaigns, jobs[0].Stage)
	assert.Equal(t, domain.BulkStageAdGroups, jobs[1].Stage)
	assert.Equal(t, domain.BulkStageAds, jobs[2].Stage)

	// duas esperas por etapa acomodada: 10s e 20s
	assert.Equal(t, []time.Duration{
		10 * time.Second, 20 * time.Second,
		10 * time.Second, 20 * time.Second,
	}, sleeper.waits)
}

func TestService_RunUploadPipeline_Failures(t *testing.T) {
	ctx := context.Background()

	missingSource := testSettings(SettleFixed)
	missingSource.Sources[domain.BulkStageCampaigns] = "missing.json"

	noAccount := testSettings(SettleFixed)
	noAccount.CustomerID = ""

	tests := []struct {
		name     string
		settings Settings
		setup    func(mockAds *mocks.MockAdsIntegrator)
		validate func(t *testing.T, err error, sleeper *recordingSleeper)
	}{
		{
			name:     "job que nunca acomoda estoura o tempo de espera",
			settings: testSettings(SettlePoll),
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), gomock.Any(), domain.BulkStageCampaigns, gomock.Any()).
					Return(&domain.BulkJob{ID: "job-1"}, nil)
				mockAds.EXPECT().GetBulkUpload(gomock.Any(), "1234567890", "job-1").
					Return(&domain.BulkJob{ID: "job-1", Status: domain.BulkJobRunning}, nil).AnyTimes()
			},
			validate: func(t *testing.T, err error, sleeper *recordingSleeper) {
				assert.ErrorIs(t, err, ErrSettleTimeout)

				var total time.Duration
				for _, wait := range sleeper.waits {
					total += wait
				}
				assert.Equal(t, 300*time.Second, total)
			},
		},
		{
			name:     "job com falha interrompe o pipeline",
			settings: testSettings(SettlePoll),
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), gomock.Any(), domain.BulkStageCampaigns, gomock.Any()).
					Return(&domain.BulkJob{ID: "job-1"}, nil)
				mockAds.EXPECT().GetBulkUpload(gomock.Any(), gomock.Any(), "job-1").
					Return(&domain.BulkJob{ID: "job-1", Status: domain.BulkJobFailed}, nil)
			},
			validate: func(t *testing.T, err error, sleeper *recordingSleeper) {
				assert.ErrorIs(t, err, ErrJobFailed)
				assert.Empty(t, sleeper.waits)
			},
		},
		{
			name:     "erro transitório na consulta continua aguardando",
			settings: testSettings(SettlePoll),
			setup: func(mockAds *mocks.MockAdsIntegrator) {
				gomock.InOrder(
					mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), gomock.Any(), domain.BulkStageCampaigns, gomock.Any()).
						Return(&domain.BulkJob{ID: "job-1"}, nil),
					mockAds.EXPECT().GetBulkUpload(gomock.Any(), gomock.Any(), "job-1").
						Return(nil, &adsdomain.APIError{HTTPStatus: 503, Status: "UNAVAILABLE"}),
					mockAds.EXPECT().GetBulkUpload(gomock.Any(), gomock.Any(), "job-1").
						Return(&domain.BulkJob{ID: "job-1", Status: domain.BulkJobDone}, nil),
					mockAds.EXPECT().SubmitBulkUpload(gomock.Any(), gomock.Any(), domain.BulkStageAdGroups, gomock.Any()).
						Return(nil, errors.New("quota")),
				)
			},
			validate: func(t *testing.T, err error, sleeper *recordingSleeper) {
				assert.ErrorContains(t, err, "submit ad_groups")
				assert.Equal(t, []time.Duration{10 * time.Second}, sleeper.waits)
			},
		},
		{
			name:     "fonte ausente não submete nada",
			settings: missingSource,
			setup:    func(mockAds *mocks.MockAdsIntegrator) {},
			validate: func(t *testing.T, err error, sleeper *recordingSleeper) {
				assert.ErrorIs(t, err, os.ErrNotExist)
				assert.Empty(t, sleeper.waits)
			},
		},
		{
			name:     "conta não configurada",
			settings: noAccount,
			setup:    func(mockAds *mocks.MockAdsIntegrator) {},
			validate: func(t *testing.T, err error, sleeper *recordingSleeper) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAds := mocks.NewMockAdsIntegrator(ctrl)
			tt.setup(mockAds)

			sleeper := &recordingSleeper{}
			err := NewService(mockAds, testLoader(), tt.settings, sleeper.sleep).RunUploadPipeline(ctx)
			tt.validate(t, err, sleeper)
		})
	}
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 10*time.Second, backoffDelay(10*time.Second, 0))
	assert.Equal(t, 40*time.Second, backoffDelay(10*time.Second, 2))
	assert.Equal(t, maxPollDelay, backoffDelay(10*time.Second, 10))
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}

func TestFileLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"create":{"name":"Summer"}},{"remove":"customers/1/campaigns/2"}]`), 0o600))

	operations, err := FileLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, operations, 2)
	assert.Equal(t, "customers/1/campaigns/2", operations[1]["remove"])

	_, err = FileLoader{}.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
