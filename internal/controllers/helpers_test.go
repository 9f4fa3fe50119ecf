package controllers

import (
	"context"
	"time"

	"nutriscan/internal/models"
	"nutriscan/internal/services"
	"nutriscan/internal/structures"
	"nutriscan/internal/testutil"
)

// --- local mocks (scoped to controller tests) ---

type stubAnalyzer struct {
	result *models.ScanResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ []byte, _ string) (*models.ScanResult, error) {
	return s.result, s.err
}

func (s *stubAnalyzer) Ping(_ context.Context) error { return nil }

// --- helpers ---

var testNow = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func testConfig() *structures.Config {
	return &structures.Config{
		Retention:   structures.RetentionConfig{Window: 24 * time.Hour},
		Entitlement: structures.EntitlementConfig{FreeQuota: 3, OwnerQuota: 999},
	}
}

type fixture struct {
	kv      *testutil.MemoryStore
	clock   *testutil.FixedClock
	store   services.LocalStoreInterface
	session services.SessionServiceInterface
	api     *ApiController
	sc      *SessionController
	cc      *CaptureController
}

func newFixture(analyzer *stubAnalyzer) *fixture {
	logger := &testutil.MockLogger{}
	f := &fixture{
		kv:    testutil.NewMemoryStore(),
		clock: testutil.NewFixedClock(testNow),
	}
	f.store = services.NewLocalStore(testConfig(), f.kv, logger, f.clock.Now)
	f.session = services.NewSessionService(testConfig(), f.kv, logger)
	capture := services.NewCaptureService(analyzer, f.store, f.session, testutil.NewMockCache(), &testutil.MockMetrics{}, logger)

	f.api = NewApiController(logger, f.store, f.clock.Now)
	f.sc = NewSessionController(logger, f.session)
	f.cc = NewCaptureController(logger, capture)
	return f
}

func sampleScan() *models.ScanResult {
	return &models.ScanResult{
		MealName: "Chicken + Rice",
		DetectedFoods: []models.DetectedFoodItem{
			models.NewDetectedFoodItem("Chicken", 100, models.NutritionInfo{Calories: 200, Protein: 20, Carbs: 10, Fat: 5}, 0.9, "", nil),
			models.NewDetectedFoodItem("Rice", 150, models.NutritionInfo{Calories: 195, Protein: 4, Carbs: 42, Fat: 0.5}, 0.9, "", nil),
		},
	}
}
