package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-orchestrator/infrastructure/heartbeat"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
	"github.com/vfg2006/campaign-orchestrator/internal/rowstore"
	"github.com/vfg2006/campaign-orchestrator/internal/usecases/handling"
)

// countingStore conta leituras e gravações por linha
type countingStore struct {
	*rowstore.MemoryStore

	mu      sync.Mutex
	loads   map[int]int
	saves   map[int]int
	saveErr error
}

func newCountingStore(rows [][]string) *countingStore {
	return &countingStore{
		MemoryStore: rowstore.NewMemoryStore(nil, rows),
		loads:       map[int]int{},
		saves:       map[int]int{},
	}
}

func (s *countingStore) Load(ctx context.Context, rowIndex int) (*rowstore.Row, error) {
	s.mu.Lock()
	s.loads[rowIndex]++
	s.mu.Unlock()
	return s.MemoryStore.Load(ctx, rowIndex)
}

func (s *countingStore) Save(ctx context.Context, row *rowstore.Row) error {
	s.mu.Lock()
	s.saves[row.Index]++
	err := s.saveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.Save(ctx, row)
}

type recordingPublisher struct {
	mu          sync.Mutex
	transitions []domain.Transition
}

func (p *recordingPublisher) PublishTransition(_ context.Context, transition domain.Transition) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transitions = append(p.transitions, transition)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func workRow(accountID string, status domain.Status) []string {
	return []string{
		"rec-" + accountID,
		`{"account_id":"` + accountID + `","campaign_name":"Summer","custom":"kept"}`,
		`{"base_video":"base"}`,
		status.String(),
		"",
	}
}

// runningRegistry leva toda linha Video Ready para Running, contando as chamadas
func runningRegistry(calls map[int]int, mu *sync.Mutex) *handling.Registry {
	registry := handling.NewRegistry()
	registry.Register(domain.StatusVideoReady, handling.HandlerFunc(
		func(_ context.Context, _ string, record *domain.WorkRecord) error {
			mu.Lock()
			calls[record.RowIndex]++
			mu.Unlock()
			record.Status = domain.StatusRunning
			return nil
		}))
	return registry
}

func TestAccountLoop_Sweep_AccountIsolation(t *testing.T) {
	store := newCountingStore([][]string{
		workRow("111", domain.StatusVideoReady),
		workRow("222", domain.StatusVideoReady),
		workRow("111", domain.StatusRunning),
		{"rec-blank", "", "{}", domain.StatusVideoReady.String(), ""},
		{"rec-broken", "{not json", "{}", domain.StatusVideoReady.String(), ""},
	})
	before := store.Snapshot()

	calls := map[int]int{}
	var mu sync.Mutex
	publisher := &recordingPublisher{}
	loop := NewAccountLoop(store, runningRegistry(calls, &mu), nil, publisher, time.Second, "run-1")

	result, err := loop.Sweep(context.Background(), "111")
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Rows: 2, Handled: 1}, result)
	assert.Equal(t, map[int]int{0: 1}, calls)
	assert.Equal(t, map[int]int{0: 1, 2: 1}, store.loads)
	assert.Equal(t, map[int]int{0: 1, 2: 1}, store.saves)

	after := store.Snapshot()
	assert.Equal(t, domain.StatusRunning.String(), after[0][3])
	assert.Contains(t, after[0][1], `"custom":"kept"`)
	assert.Equal(t, before[1], after[1], "linha de outra conta alterada")
	assert.Equal(t, before[2], after[2], "linha sem handler alterada")
	assert.Equal(t, before[3], after[3])
	assert.Equal(t, before[4], after[4])

	require.Len(t, publisher.transitions, 1)
	assert.Equal(t, domain.Transition{
		RunID:     "run-1",
		AccountID: "111",
		RowIndex:  0,
		RecordID:  "rec-111",
		From:      domain.StatusVideoReady,
		To:        domain.StatusRunning,
		At:        publisher.transitions[0].At,
	}, publisher.transitions[0])
}

func TestAccountLoop_Sweep_NumericMetadataIsHandled(t *testing.T) {
	store := newCountingStore([][]string{
		{"rec-1", `{"account_id":"111","campaign_name":"C","target_location":2076}`, "{}", domain.StatusOff.String(), ""},
	})

	var targets []string
	registry := handling.NewRegistry()
	registry.Register(domain.StatusOff, handling.HandlerFunc(
		func(_ context.Context, _ string, record *domain.WorkRecord) error {
			targets = append(targets, record.Ads.TargetLocation)
			record.Status = domain.StatusDone
			return nil
		}))
	loop := NewAccountLoop(store, registry, nil, nil, time.Second, "run-1")

	result, err := loop.Sweep(context.Background(), "111")
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Rows: 1, Handled: 1}, result)
	assert.Equal(t, []string{"2076"}, targets)
	assert.Equal(t, domain.StatusDone.String(), store.Snapshot()[0][3])
}

func TestAccountLoop_Run_SweepsUntilDeadline(t *testing.T) {
	store := newCountingStore([][]string{
		workRow("111", domain.StatusPriceChanged),
		workRow("111", domain.StatusDone),
	})

	calls := 0
	registry := handling.NewRegistry()
	registry.Register(domain.StatusPriceChanged, handling.HandlerFunc(
		func(context.Context, string, *domain.WorkRecord) error {
			calls++
			return nil
		}))

	recorder := heartbeat.NewMemoryRecorder()
	loop := NewAccountLoop(store, registry, recorder, nil, 30*time.Second, "run-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeps := 0
	loop.sleep = func(ctx context.Context, d time.Duration) error {
		assert.Equal(t, 30*time.Second, d)
		sweeps++
		if sweeps == 3 {
			cancel()
			return ctx.Err()
		}
		return nil
	}

	require.NoError(t, loop.Run(ctx, "111"))

	assert.Equal(t, 3, calls)
	assert.Equal(t, map[int]int{0: 3, 1: 3}, store.saves)

	hb, ok, err := recorder.Latest(context.Background(), "111")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, hb.Sweep)
	assert.Equal(t, 2, hb.Rows)
	assert.Equal(t, 1, hb.Handled)
	assert.Equal(t, "run-1", hb.RunID)
}

func TestAccountLoop_Run_ExpiredDeadlineDoesNotSweep(t *testing.T) {
	store := newCountingStore([][]string{workRow("111", domain.StatusVideoReady)})
	calls := map[int]int{}
	var mu sync.Mutex
	loop := NewAccountLoop(store, runningRegistry(calls, &mu), nil, nil, time.Second, "run-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, loop.Run(ctx, "111"))
	assert.Empty(t, calls)
	assert.Empty(t, store.loads)
}

func TestAccountLoop_Run_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(store *countingStore, registry *handling.Registry)
		validate func(t *testing.T, err error, store *countingStore)
	}{
		{
			name: "erro do handler encerra o laço sem gravar a linha",
			setup: func(store *countingStore, registry *handling.Registry) {
				registry.Register(domain.StatusVideoReady, handling.HandlerFunc(
					func(context.Context, string, *domain.WorkRecord) error {
						return errors.New("invalid argument")
					}))
			},
			validate: func(t *testing.T, err error, store *countingStore) {
				assert.ErrorContains(t, err, "invalid argument")
				assert.Empty(t, store.saves)
			},
		},
		{
			name: "erro de gravação encerra a varredura",
			setup: func(store *countingStore, registry *handling.Registry) {
				store.saveErr = errors.New("disk full")
				registry.Register(domain.StatusVideoReady, handling.HandlerFunc(
					func(context.Context, string, *domain.WorkRecord) error { return nil }))
			},
			validate: func(t *testing.T, err error, store *countingStore) {
				assert.ErrorContains(t, err, "save row 0")
				assert.Equal(t, map[int]int{0: 1}, store.saves)
				assert.Empty(t, store.loads[1])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newCountingStore([][]string{
				workRow("111", domain.StatusVideoReady),
				workRow("111", domain.StatusVideoReady),
			})
			registry := handling.NewRegistry()
			tt.setup(store, registry)

			loop := NewAccountLoop(store, registry, nil, nil, time.Second, "run-1")
			loop.sleep = func(context.Context, time.Duration) error {
				t.Fatal("o laço não deveria dormir após uma falha")
				return nil
			}

			tt.validate(t, loop.Run(context.Background(), "111"), store)
		})
	}
}

func TestAccountLoop_Finalize(t *testing.T) {
	store := newCountingStore([][]string{
		workRow("111", domain.StatusVideoReady),
		workRow("111", domain.StatusVideoReady),
	})
	calls := map[int]int{}
	var mu sync.Mutex
	recorder := heartbeat.NewMemoryRecorder()
	loop := NewAccountLoop(store, runningRegistry(calls, &mu), recorder, nil, time.Second, "run-1")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	require.NoError(t, loop.Finalize(ctx, "111"))
	assert.Equal(t, map[int]int{0: 1, 1: 1}, calls)

	hb, ok, err := recorder.Latest(ctx, "111")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, hb.Sweep)
	assert.Equal(t, 2, hb.Handled)
}
