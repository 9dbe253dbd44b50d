package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/cache/memory"
	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
)

func TestRepository_LoadEmpty(t *testing.T) {
	repo := NewRepository(memory.NewKV())

	modules, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	repo := NewRepository(memory.NewKV())
	ctx := context.Background()

	want := []domain.Module{
		{Name: "Grade 5 Math", StoreHandle: "fileSearchStores/abc", Documents: []string{"algebra.pdf"}},
		{Name: "Biology", StoreHandle: "fileSearchStores/def", Documents: []string{"cells.pdf", "plants.pdf"}},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_CorruptCacheTreatedAsEmpty(t *testing.T) {
	kv := memory.NewKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, DefaultKey, "{not json"))

	repo := NewRepository(kv)
	modules, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestRepository_CacheWireShape(t *testing.T) {
	kv := memory.NewKV()
	ctx := context.Background()
	repo := NewRepository(kv)

	require.NoError(t, repo.Save(ctx, []domain.Module{
		{Name: "Math", StoreHandle: "s1", Documents: []string{"a.pdf"}},
	}))

	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"name":"Math","storeName":"s1","books":["a.pdf"]}]`, raw)
}

func TestRepository_SaveNilWritesEmptyArray(t *testing.T) {
	kv := memory.NewKV()
	ctx := context.Background()
	repo := NewRepository(kv)

	require.NoError(t, repo.Save(ctx, nil))

	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, raw)
}
