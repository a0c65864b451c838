package heartbeat

import (
	"context"
	"errors"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recorder guarda o último heartbeat de cada conta
type Recorder interface {
	Record(ctx context.Context, hb domain.Heartbeat) error
	Latest(ctx context.Context, accountID string) (domain.Heartbeat, bool, error)
	Close() error
}

// NewRecorder usa Redis quando há endereço configurado, senão memória
func NewRecorder(addr, prefix string, ttl time.Duration) Recorder {
	if addr == "" {
		return NewMemoryRecorder()
	}
	return NewRedisRecorder(addr, prefix, ttl)
}

// RedisRecorder grava heartbeats no Redis com expiração
type RedisRecorder struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRecorder(addr, prefix string, ttl time.Duration) *RedisRecorder {
	return &RedisRecorder{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}

func (r *RedisRecorder) Record(ctx context.Context, hb domain.Heartbeat) error {
	payload, err := json.Marshal(hb)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(hb.AccountID), payload, r.ttl).Err()
}

func (r *RedisRecorder) Latest(ctx context.Context, accountID string) (domain.Heartbeat, bool, error) {
	val, err := r.client.Get(ctx, r.key(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Heartbeat{}, false, nil
		}
		return domain.Heartbeat{}, false, err
	}

	var hb domain.Heartbeat
	if err := json.UnmarshalFromString(val, &hb); err != nil {
		return domain.Heartbeat{}, false, err
	}
	return hb, true, nil
}

func (r *RedisRecorder) key(accountID string) string {
	return r.prefix + accountID
}

// MemoryRecorder mantém os heartbeats no processo e também os registra no log
type MemoryRecorder struct {
	mu     sync.RWMutex
	latest map[string]domain.Heartbeat
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{latest: map[string]domain.Heartbeat{}}
}

func (m *MemoryRecorder) Record(_ context.Context, hb domain.Heartbeat) error {
	m.mu.Lock()
	m.latest[hb.AccountID] = hb
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":     hb.RunID,
		"account_id": hb.AccountID,
		"sweep":      hb.Sweep,
		"rows":       hb.Rows,
		"handled":    hb.Handled,
	}).Debug("heartbeat registrado")
	return nil
}

func (m *MemoryRecorder) Latest(_ context.Context, accountID string) (domain.Heartbeat, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hb, ok := m.latest[accountID]
	return hb, ok, nil
}

func (m *MemoryRecorder) Close() error {
	return nil
}
