package memory

import (
	"sync"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

// Repository caches league metadata and the last published projection per
// request key.
type Repository struct {
	metadata    *models.LeagueMetadata
	projections map[string]models.MatchupProjection
	mu          sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{projections: make(map[string]models.MatchupProjection)}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata
}

func (r *Repository) SaveProjection(key string, p models.MatchupProjection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projections[key] = p
}

func (r *Repository) GetProjection(key string) (models.MatchupProjection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projections[key]
	return p, ok
}
