package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nutriscan/internal/models"
	"nutriscan/internal/services"
	"nutriscan/internal/structures"
	"nutriscan/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{
			Driver:       DriverFile,
			FilePath:     filePath,
			SaveInterval: time.Second,
		},
		Retention: structures.RetentionConfig{
			Window:        24 * time.Hour,
			SweepInterval: time.Second,
		},
	}
}

func TestScheduler_Restore_SweepsExpiredRecords(t *testing.T) {
	clock := testutil.NewFixedClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	kv := testutil.NewMemoryStore()
	conf := testConfig("")
	logger := &testutil.MockLogger{}
	store := services.NewLocalStore(conf, kv, logger, clock.Now)

	store.AddMeal(models.MealCandidate{Name: "Old", Nutrition: models.NutritionInfo{Calories: 100}})
	clock.Advance(25 * time.Hour)
	store.AddMeal(models.MealCandidate{Name: "New", Nutrition: models.NutritionInfo{Calories: 200}})

	metrics := &testutil.MockMetrics{}
	s := NewScheduler(conf, logger, store, kv, metrics)
	require.NoError(t, s.Restore())

	assert.Equal(t, 1, kv.Loads)
	assert.Equal(t, 1, metrics.Swept[services.KeyMeals])
	assert.Equal(t, 1, metrics.RecordsTotal[services.KeyMeals])
	assert.NotContains(t, kv.Raw(services.KeyMeals), "Old")
}

func TestScheduler_Restore_CorruptStoreIsNotFatal(t *testing.T) {
	kv := testutil.NewMemoryStore()
	kv.LoadErr = ErrCorruptStore
	logger := &testutil.MockLogger{}
	conf := testConfig("")
	store := services.NewLocalStore(conf, kv, logger, time.Now)

	s := NewScheduler(conf, logger, store, kv, &testutil.MockMetrics{})
	assert.NoError(t, s.Restore())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestScheduler_Restore_ReadErrorIsReturned(t *testing.T) {
	kv := testutil.NewMemoryStore()
	kv.LoadErr = errors.New("permission denied")
	conf := testConfig("")
	store := services.NewLocalStore(conf, kv, &testutil.MockLogger{}, time.Now)

	s := NewScheduler(conf, &testutil.MockLogger{}, store, kv, &testutil.MockMetrics{})
	assert.Error(t, s.Restore())
}

func TestScheduler_Persist_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.dat")
	conf := testConfig(path)
	logger := &testutil.MockLogger{}
	fs := NewFileStore(path, &testutil.MockCompressor{}, logger)
	store := services.NewLocalStore(conf, fs, logger, time.Now)
	_, err := store.AddWaterEntry(250)
	require.NoError(t, err)

	metrics := &testutil.MockMetrics{}
	s := NewScheduler(conf, logger, store, fs, metrics)
	require.NoError(t, s.Persist())

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, metrics.Persisted)
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	kv := testutil.NewMemoryStore()
	conf := testConfig("")
	store := services.NewLocalStore(conf, kv, &testutil.MockLogger{}, time.Now)
	kv.Fail = true

	metrics := &testutil.MockMetrics{}
	s := NewScheduler(conf, &testutil.MockLogger{}, store, kv, metrics)
	assert.Error(t, s.Persist())
	assert.Equal(t, 0, metrics.Persisted)
}

func TestScheduler_StopNilCron(t *testing.T) {
	kv := testutil.NewMemoryStore()
	conf := testConfig("")
	store := services.NewLocalStore(conf, kv, &testutil.MockLogger{}, time.Now)

	s := NewScheduler(conf, &testutil.MockLogger{}, store, kv, &testutil.MockMetrics{})
	s.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	kv := testutil.NewMemoryStore()
	conf := testConfig("")
	store := services.NewLocalStore(conf, kv, &testutil.MockLogger{}, time.Now)

	s := NewScheduler(conf, &testutil.MockLogger{}, store, kv, &testutil.MockMetrics{})
	s.Init()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}
