package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"study-hub/internal/pomodoro"
	"study-hub/pkg/redis"
)

// pomodoroTTL 用户长时间未使用时状态自动过期
const pomodoroTTL = 7 * 24 * time.Hour

const pomodoroKeyPrefix = "pomodoro:"

// PomodoroStore 番茄钟状态存储接口
// Get 在用户尚无状态时返回 (nil, nil)
type PomodoroStore interface {
	Get(ctx context.Context, userID string) (*pomodoro.Timer, error)
	Save(ctx context.Context, userID string, t *pomodoro.Timer) error
}

// ── Redis 实现 ──

type redisPomodoroStore struct {
	rdb *redis.Client
}

// NewRedisPomodoroStore 以 JSON 形式将状态保存到 Redis，多实例部署共享
func NewRedisPomodoroStore(rdb *redis.Client) PomodoroStore {
	return &redisPomodoroStore{rdb: rdb}
}

func (s *redisPomodoroStore) Get(ctx context.Context, userID string) (*pomodoro.Timer, error) {
	raw, err := s.rdb.Get(ctx, pomodoroKeyPrefix+userID)
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t pomodoro.Timer
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *redisPomodoroStore) Save(ctx context.Context, userID string, t *pomodoro.Timer) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, pomodoroKeyPrefix+userID, raw, pomodoroTTL)
}

// ── 进程内实现（Redis 不可用时降级） ──

type memoryPomodoroStore struct {
	mu     sync.RWMutex
	timers map[string]pomodoro.Timer
}

// NewMemoryPomodoroStore 进程内存储，重启后状态丢失
func NewMemoryPomodoroStore() PomodoroStore {
	return &memoryPomodoroStore{timers: make(map[string]pomodoro.Timer)}
}

func (s *memoryPomodoroStore) Get(_ context.Context, userID string) (*pomodoro.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timers[userID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *memoryPomodoroStore) Save(_ context.Context, userID string, t *pomodoro.Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[userID] = *t
	return nil
}
