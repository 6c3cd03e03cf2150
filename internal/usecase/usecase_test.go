package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// scriptedSource replays fixed draws so selection tests are deterministic.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

type fakeBrainRepo struct {
	mu     sync.RWMutex
	brains map[string]*entity.UserBrain
	saves  int
}

func newFakeBrainRepo() *fakeBrainRepo {
	return &fakeBrainRepo{brains: make(map[string]*entity.UserBrain)}
}

func (r *fakeBrainRepo) Load(ctx context.Context, userID string) (*entity.UserBrain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	brain, ok := r.brains[userID]
	if !ok {
		return nil, nil
	}
	return brain.Clone(), nil
}

func (r *fakeBrainRepo) Save(ctx context.Context, brain *entity.UserBrain) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brains[brain.UserID] = brain.Clone()
	r.saves++
	return nil
}

type fakeConfigRepo struct {
	mu  sync.RWMutex
	cfg *entity.GameConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{cfg: entity.DefaultGameConfig()}
}

func (r *fakeConfigRepo) Load(ctx context.Context) (*entity.GameConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	copied := *r.cfg
	return &copied, nil
}

func (r *fakeConfigRepo) Save(ctx context.Context, cfg *entity.GameConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cfg
	r.cfg = &copied
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}
