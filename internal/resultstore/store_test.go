package resultstore

import (
	"testing"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(kind schema.TestKind, reps int) contract.ResultRecord {
	return contract.ResultRecord{
		RecordedAt:  1700000000,
		TestKind:    kind,
		Repetitions: reps,
		Quality:     0.72,
		Suspicion:   0.1,
		Percentile:  58.5,
		Rating:      schema.AverageRating,
		Status:      schema.OkStatus,
	}
}

func TestResultStore_NoneBackend(t *testing.T) {
	store, err := NewResultStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// Record should return 0 for NoneBackend
	id, err := store.Record(sampleRecord(schema.PushupTest, 20))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)

	// Other operations should not error
	records, err := store.List(10)
	assert.NoError(t, err)
	assert.Nil(t, records)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestResultStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewResultStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	rec := sampleRecord(schema.SquatTest, 32)
	id, err := store.Record(rec)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	records, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, schema.SquatTest, records[0].TestKind)
	assert.Equal(t, 32, records[0].Repetitions)
	assert.Equal(t, schema.AverageRating, records[0].Rating)
	assert.Equal(t, schema.OkStatus, records[0].Status)
	assert.InDelta(t, 58.5, records[0].Percentile, 1e-9)
}

func TestResultStore_ListNewestFirst(t *testing.T) {
	store, err := NewResultStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	for i := 1; i <= 5; i++ {
		_, err := store.Record(sampleRecord(schema.PushupTest, i*10))
		require.NoError(t, err)
	}

	records, err := store.List(3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 50, records[0].Repetitions)
	assert.Equal(t, 40, records[1].Repetitions)
	assert.Equal(t, 30, records[2].Repetitions)
}

func TestResultStore_EventMetricRecord(t *testing.T) {
	store, err := NewResultStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	rec := sampleRecord(schema.VerticalJumpTest, 0)
	rec.MetricName = "jump_height_cm"
	rec.MetricValue = 48.2

	_, err = store.Record(rec)
	require.NoError(t, err)

	records, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "jump_height_cm", records[0].MetricName)
	assert.InDelta(t, 48.2, records[0].MetricValue, 1e-9)
}

func TestResultStore_Clear(t *testing.T) {
	store, err := NewResultStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Record(sampleRecord(schema.PlankTest, 0))
	require.NoError(t, err)

	require.NoError(t, store.Clear())

	records, err := store.List(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResultStore_UnsupportedBackend(t *testing.T) {
	store, err := NewResultStore(schema.StorageBackend("redis"), "")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestMockResultStore(t *testing.T) {
	store := &MockResultStore{}
	rec := sampleRecord(schema.SitupTest, 18)

	store.On("Record", rec).Return(int64(7), nil)
	store.On("List", 5).Return([]contract.ResultRecord{rec}, nil)
	store.On("Close").Return(nil)

	id, err := store.Record(rec)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)

	records, err := store.List(5)
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	assert.NoError(t, store.Close())
	store.AssertExpectations(t)
}
