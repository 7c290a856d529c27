package repositories

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/vela/internal/models"
)

func TestCreateAndFind(t *testing.T) {
	repo := NewWorkspaceRepository()
	ws := models.NewWorkspace()

	require.NoError(t, repo.Create(ws))
	assert.Error(t, repo.Create(ws), "duplicate ids are rejected")

	found, err := repo.FindByID(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, found.ID)

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, models.ErrWorkspaceNotFound)
}

func TestUpdateKeepsSnapshotOnError(t *testing.T) {
	repo := NewWorkspaceRepository()
	ws := models.NewWorkspace().WithJobDescription("original")
	require.NoError(t, repo.Create(ws))

	_, err := repo.Update(ws.ID, func(w models.Workspace) (models.Workspace, error) {
		return w.WithJobDescription("changed"), errors.New("boom")
	})
	require.Error(t, err)

	found, err := repo.FindByID(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", found.JobDescription)
}

func TestUpdateSerialisesStartTransitions(t *testing.T) {
	repo := NewWorkspaceRepository()
	ws := models.NewWorkspace().WithJobDescription("JD")
	ws, _ = ws.WithMode(models.InputModeForm)
	ws = ws.WithProfile(models.UserProfile{Name: "Ada"})
	require.NoError(t, repo.Create(ws))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		started int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ws.ID, func(w models.Workspace) (models.Workspace, error) {
				return w.StartGeneration(models.DocumentResume)
			})
			if err == nil {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, started)
}

func TestDelete(t *testing.T) {
	repo := NewWorkspaceRepository()
	ws := models.NewWorkspace()
	require.NoError(t, repo.Create(ws))

	require.NoError(t, repo.Delete(ws.ID))
	assert.ErrorIs(t, repo.Delete(ws.ID), models.ErrWorkspaceNotFound)
}
