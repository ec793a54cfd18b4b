package memory

import (
	"context"
	"sync"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

// DisableStore keeps player overrides for the life of the process.
type DisableStore struct {
	mu    sync.RWMutex
	state models.DisableState
}

func NewDisableStore() *DisableStore {
	return &DisableStore{state: models.DisableState{}}
}

func (s *DisableStore) Load(_ context.Context) (models.DisableState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

func (s *DisableStore) Save(_ context.Context, state models.DisableState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	return nil
}
