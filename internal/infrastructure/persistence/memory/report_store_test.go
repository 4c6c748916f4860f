package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minervahq/minerva/internal/domain/models"
)

func sampleReport(id string) *models.RiskReport {
	return &models.RiskReport{
		AnalysisID:  id,
		Probability: 34.5,
		RiskLevel:   models.RiskLow,
		CreatedAt:   time.Now(),
	}
}

func TestCacheReportStore_SetAndGet(t *testing.T) {
	store := NewCacheReportStore(time.Minute)
	ctx := context.Background()

	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, store.SetCurrent(ctx, sampleReport("MIN-20260824-1234")))

	current, err = store.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "MIN-20260824-1234", current.AnalysisID)
}

func TestCacheReportStore_Overwrite(t *testing.T) {
	store := NewCacheReportStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SetCurrent(ctx, sampleReport("MIN-20260824-1111")))
	require.NoError(t, store.SetCurrent(ctx, sampleReport("MIN-20260824-2222")))

	current, err := store.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "MIN-20260824-2222", current.AnalysisID)
}

func TestCacheReportStore_Clear(t *testing.T) {
	store := NewCacheReportStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SetCurrent(ctx, sampleReport("MIN-20260824-1234")))
	require.NoError(t, store.Clear(ctx))

	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCacheReportStore_Expiry(t *testing.T) {
	store := NewCacheReportStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.SetCurrent(ctx, sampleReport("MIN-20260824-1234")))
	time.Sleep(40 * time.Millisecond)

	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}
