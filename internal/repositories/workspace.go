package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/vela/internal/models"
)

// WorkspaceTransition derives the next snapshot from the current one.
type WorkspaceTransition func(models.Workspace) (models.Workspace, error)

type WorkspaceRepository interface {
	Create(ws models.Workspace) error
	FindByID(id uuid.UUID) (models.Workspace, error)
	Update(id uuid.UUID, transition WorkspaceTransition) (models.Workspace, error)
	Delete(id uuid.UUID) error
}

// workspaceRepository keeps sessions in process memory only; nothing
// outlives a restart.
type workspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[uuid.UUID]models.Workspace
}

func NewWorkspaceRepository() WorkspaceRepository {
	return &workspaceRepository{
		workspaces: make(map[uuid.UUID]models.Workspace),
	}
}

// Create implements WorkspaceRepository.
func (r *workspaceRepository) Create(ws models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workspaces[ws.ID]; exists {
		return fmt.Errorf("failed to create workspace: %s already exists", ws.ID)
	}
	r.workspaces[ws.ID] = ws
	return nil
}

// FindByID implements WorkspaceRepository.
func (r *workspaceRepository) FindByID(id uuid.UUID) (models.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, ok := r.workspaces[id]
	if !ok {
		return models.Workspace{}, fmt.Errorf("failed to find workspace %s: %w", id, models.ErrWorkspaceNotFound)
	}
	return ws, nil
}

// Update implements WorkspaceRepository. The transition runs under the
// write lock so check-and-set of the in-progress flags is atomic.
func (r *workspaceRepository) Update(id uuid.UUID, transition WorkspaceTransition) (models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.workspaces[id]
	if !ok {
		return models.Workspace{}, fmt.Errorf("failed to update workspace %s: %w", id, models.ErrWorkspaceNotFound)
	}

	next, err := transition(current)
	if err != nil {
		return current, err
	}

	r.workspaces[id] = next
	return next, nil
}

// Delete implements WorkspaceRepository.
func (r *workspaceRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.workspaces[id]; !ok {
		return fmt.Errorf("failed to delete workspace %s: %w", id, models.ErrWorkspaceNotFound)
	}
	delete(r.workspaces, id)
	return nil
}
