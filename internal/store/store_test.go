package store

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zipshipping/internal/errors"
	"zipshipping/internal/rate"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, int) (rate.Settings, error) { return nil, f.err }
func (f failingStore) Save(context.Context, int, rate.Settings) error  { return f.err }

func TestMemory_GetSave(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, 1)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
	assert.EqualError(t, err, "[NOT_FOUND] method settings not found: 1")

	in := rate.Settings{rate.KeyTitle: "Prague", rate.KeyAllowedZips: "1*"}
	require.NoError(t, m.Save(ctx, 1, in))
	in[rate.KeyTitle] = "mutated"

	got, err := m.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Prague", got[rate.KeyTitle])
}

func TestLoad_DefaultsForUnsavedInstance(t *testing.T) {
	cfg, err := Load(context.Background(), NewMemory(), 3)
	require.NoError(t, err)
	assert.Equal(t, rate.MethodConfig{Enabled: true, Title: "Local delivery", Cost: "0"}, cfg)
}

func TestLoad_MergesSavedSettings(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Save(ctx, 2, rate.Settings{rate.KeyCost: "99", rate.KeyAllowedZips: "350*"}))

	cfg, err := Load(ctx, m, 2)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "99", cfg.Cost)
	assert.Equal(t, "350*", cfg.AllowedZipsRaw)
}

func TestLoad_InvalidStoredCost(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Save(ctx, 2, rate.Settings{rate.KeyCost: "free"}))

	_, err := Load(ctx, m, 2)
	assert.True(t, errors.IsType(err, errors.TypeInvalidCostFormat))
}

func TestLoad_StoreFailureIsInternal(t *testing.T) {
	boom := stderrors.New("boom")
	_, err := Load(context.Background(), failingStore{err: boom}, 1)
	assert.True(t, errors.IsType(err, errors.TypeInternal))
	assert.ErrorIs(t, err, boom)
}
