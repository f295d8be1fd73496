package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlist/internal/model"
	"flowlist/internal/storage"
)

func newTestCategoryRepo(t *testing.T) (*CategoryRepository, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	backend.Put(CategoriesKey, []byte("[]"))
	return NewCategoryRepository(backend, NoLatency), backend
}

func TestCategoryRepository_SeedsOnFirstUse(t *testing.T) {
	backend := storage.NewMemory()
	repo := NewCategoryRepository(backend, NoLatency)

	categories, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, categories)

	_, ok := backend.Get(CategoriesKey)
	assert.True(t, ok)
}

func TestCategoryRepository_Create_AppliesDefaults(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)

	category, err := repo.Create(context.Background(), CategoryInput{Name: "Errands"})
	require.NoError(t, err)
	require.NotNil(t, category)

	assert.Equal(t, 1, category.ID)
	assert.Equal(t, "Errands", category.Name)
	assert.Equal(t, model.DefaultCategoryColor, category.Color)
	assert.Zero(t, category.TaskCount)
}

func TestCategoryRepository_Create_RequiresName(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)

	category, err := repo.Create(context.Background(), CategoryInput{Color: "#000000"})
	assert.Error(t, err)
	assert.Nil(t, category)
}

func TestCategoryRepository_IDAllocation(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, CategoryInput{Name: "One"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, CategoryInput{Name: "Two"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestCategoryRepository_Update(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)
	ctx := context.Background()

	category, err := repo.Create(ctx, CategoryInput{Name: "Errands", Color: "#111111"})
	require.NoError(t, err)

	color := "#222222"
	updated, err := repo.Update(ctx, category.ID, CategoryPatch{Color: &color})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, category.ID, updated.ID)
	assert.Equal(t, "Errands", updated.Name)
	assert.Equal(t, "#222222", updated.Color)

	missing, err := repo.Update(ctx, 99, CategoryPatch{Color: &color})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryRepository_UpdateTaskCount(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, CategoryInput{Name: "Work"})
	require.NoError(t, err)

	updated, err := repo.UpdateTaskCount(ctx, "Work", 7)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 7, updated.TaskCount)

	fetched, err := repo.GetById(ctx, updated.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, 7, fetched.TaskCount)

	missing, err := repo.UpdateTaskCount(ctx, "Nope", 3)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryRepository_DeleteThenFetch(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)
	ctx := context.Background()

	category, err := repo.Create(ctx, CategoryInput{Name: "Temp"})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetById(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.Delete(ctx, category.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCategoryRepository_CopyOutIsolation(t *testing.T) {
	repo, _ := newTestCategoryRepo(t)
	ctx := context.Background()

	category, err := repo.Create(ctx, CategoryInput{Name: "Stable"})
	require.NoError(t, err)

	got, err := repo.GetById(ctx, category.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	fresh, err := repo.GetById(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stable", fresh.Name)
}

func TestCategoryRepository_BackendUnavailable(t *testing.T) {
	backend := storage.NewMemory()
	backend.LoadErr = errors.New("connection refused")
	repo := NewCategoryRepository(backend, NoLatency)
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)

	updated, err := repo.UpdateTaskCount(ctx, "Work", 1)
	assert.NoError(t, err)
	assert.Nil(t, updated)
}
