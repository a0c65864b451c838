package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/heartbeat"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/rowstore"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/handling"
)

func testRunConfig(accounts ...string) CampaignRunConfig {
	return CampaignRunConfig{
		CronSchedule:  "0 * * * *",
		Accounts:      accounts,
		SleepInterval: time.Second,
		Dispatcher: DispatcherConfig{
			MaxAccounts:    50,
			LoopBudget:     time.Minute,
			FinalizeBudget: time.Minute,
		},
	}
}

func TestDiscoverAccounts(t *testing.T) {
	store := rowstore.NewMemoryStore(nil, [][]string{
		workRow("222", domain.StatusRunning),
		workRow("111", domain.StatusRunning),
		{"rec-blank", "", "{}", "", ""},
		workRow("222", domain.StatusDone),
		workRow("333", domain.StatusOff),
	})

	accounts, err := DiscoverAccounts(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []string{"222", "111", "333"}, accounts)
}

func TestCampaignRunService_RunOnce(t *testing.T) {
	store := rowstore.NewMemoryStore(nil, [][]string{
		workRow("111", domain.StatusVideoReady),
		workRow("222", domain.StatusVideoReady),
		workRow("333", domain.StatusVideoReady),
	})
	registry := handling.NewRegistry()
	registry.Register(domain.StatusVideoReady, handling.HandlerFunc(
		func(_ context.Context, _ string, record *domain.WorkRecord) error {
			record.Status = domain.StatusRunning
			return nil
		}))
	recorder := heartbeat.NewMemoryRecorder()

	svc := NewCampaignRunServiceWithConfig(store, registry, recorder, nil, testRunConfig("111", "222"))
	svc.sleep = func(context.Context, time.Duration) error { return context.DeadlineExceeded }

	report, err := svc.RunOnce(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, []string{"111", "222"}, report.Accounts)
	assert.Empty(t, report.Failed())

	rows := store.Snapshot()
	assert.Equal(t, domain.StatusRunning.String(), rows[0][3])
	assert.Equal(t, domain.StatusRunning.String(), rows[1][3])
	assert.Equal(t, domain.StatusVideoReady.String(), rows[2][3])

	_, ok, err := recorder.Latest(context.Background(), "111")
	require.NoError(t, err)
	assert.True(t, ok)

	status := svc.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, &report, status["last_report"])
	assert.Equal(t, []string{"111", "222"}, svc.LastAccounts())
}

func TestCampaignRunService_RunOnce_Guard(t *testing.T) {
	svc := NewCampaignRunServiceWithConfig(rowstore.NewMemoryStore(nil, nil), handling.NewRegistry(), nil, nil, testRunConfig())
	svc.runRunning = true

	_, err := svc.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.False(t, svc.TriggerManualSync(context.Background()))
}

func TestCampaignRunService_TriggerManualSync(t *testing.T) {
	store := rowstore.NewMemoryStore(nil, [][]string{workRow("111", domain.StatusDone)})
	svc := NewCampaignRunServiceWithConfig(store, handling.NewRegistry(), nil, nil, testRunConfig())
	svc.sleep = func(context.Context, time.Duration) error { return context.DeadlineExceeded }

	require.True(t, svc.TriggerManualSync(context.Background()))

	assert.Eventually(t, func() bool {
		return len(svc.LastAccounts()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return svc.GetStatus()["running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCampaignRunService_StartDisabled(t *testing.T) {
	svc := NewCampaignRunServiceWithConfig(rowstore.NewMemoryStore(nil, nil), handling.NewRegistry(), nil, nil, testRunConfig())
	assert.NoError(t, svc.Start(context.Background()))
}
