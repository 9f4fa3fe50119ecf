package services

import (
	"errors"
	"nutriscan/internal/models"
	"nutriscan/internal/providers"
	"nutriscan/internal/storage/interfaces"
	"nutriscan/internal/structures"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("water amount must be greater than zero")

type LocalStoreInterface interface {
	AddMeal(candidate models.MealCandidate) models.MealRecord
	GetMeals() []models.MealRecord
	DeleteMeal(id string)
	AddWaterEntry(amount int) (models.WaterLogEntry, error)
	GetWaterLog() []models.WaterLogEntry
	ResetTodayWater() int
	ClearHistory()
	CleanExpiredData() models.SweepResult
	GetStats() models.StoreStats
	GetGoals() models.DailyGoals
	UpdateGoals(patch models.GoalsPatch) (models.DailyGoals, error)
	IsOnboardingComplete() bool
	CompleteOnboarding()
	ClearAll()
}

// LocalStore keeps today's meals and water entries. Records older than the
// retention window are invisible to readers and removed by CleanExpiredData.
type LocalStore struct {
	kv     interfaces.KeyValueStore
	logger providers.Logger
	clock  Clock
	window time.Duration
	mu     sync.RWMutex
}

func NewLocalStore(conf *structures.Config, kv interfaces.KeyValueStore, logger providers.Logger, clock Clock) LocalStoreInterface {
	window := conf.Retention.Window
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &LocalStore{
		kv:     kv,
		logger: logger,
		clock:  clock,
		window: window,
	}
}

func (s *LocalStore) fresh(timestamp int64, now time.Time) bool {
	return now.UnixMilli()-timestamp < s.window.Milliseconds()
}

func (s *LocalStore) loadMeals() []models.MealRecord {
	var meals []models.MealRecord
	if !readJSON(s.kv, s.logger, KeyMeals, &meals) {
		return nil
	}
	return meals
}

func (s *LocalStore) loadWater() []models.WaterLogEntry {
	var entries []models.WaterLogEntry
	if !readJSON(s.kv, s.logger, KeyWaterLog, &entries) {
		return nil
	}
	return entries
}

func newMealID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *LocalStore) AddMeal(candidate models.MealCandidate) models.MealRecord {
	record := models.MealRecord{
		ID:            newMealID(),
		Name:          candidate.Name,
		ImageURL:      candidate.ImageURL,
		Nutrition:     candidate.Nutrition,
		DetectedFoods: candidate.DetectedFoods,
		Timestamp:     s.clock().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meals := append([]models.MealRecord{record}, s.loadMeals()...)
	writeJSON(s.kv, s.logger, KeyMeals, meals)
	s.logger.Debugf(providers.TypeStore, "Meal %s saved", record.ID)
	return record
}

func (s *LocalStore) GetMeals() []models.MealRecord {
	now := s.clock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	meals := s.loadMeals()
	out := make([]models.MealRecord, 0, len(meals))
	for _, m := range meals {
		if s.fresh(m.Timestamp, now) {
			out = append(out, m)
		}
	}
	return out
}

func (s *LocalStore) DeleteMeal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meals := s.loadMeals()
	idx := slices.IndexFunc(meals, func(m models.MealRecord) bool { return m.ID == id })
	if idx < 0 {
		return
	}
	writeJSON(s.kv, s.logger, KeyMeals, slices.Delete(meals, idx, idx+1))
}

func (s *LocalStore) AddWaterEntry(amount int) (models.WaterLogEntry, error) {
	if amount <= 0 {
		return models.WaterLogEntry{}, ErrInvalidAmount
	}
	entry := models.WaterLogEntry{Amount: amount, Timestamp: s.clock().UnixMilli()}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.loadWater(), entry)
	writeJSON(s.kv, s.logger, KeyWaterLog, entries)
	return entry, nil
}

func (s *LocalStore) GetWaterLog() []models.WaterLogEntry {
	now := s.clock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.loadWater()
	out := make([]models.WaterLogEntry, 0, len(entries))
	for _, e := range entries {
		if s.fresh(e.Timestamp, now) {
			out = append(out, e)
		}
	}
	return out
}

// ResetTodayWater removes the entries logged since local midnight and returns
// how many were removed.
func (s *LocalStore) ResetTodayWater() int {
	midnight := startOfDay(s.clock()).UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadWater()
	before := len(entries)
	entries = slices.DeleteFunc(entries, func(e models.WaterLogEntry) bool { return e.Timestamp >= midnight })
	if removed := before - len(entries); removed > 0 {
		writeJSON(s.kv, s.logger, KeyWaterLog, entries)
		return removed
	}
	return 0
}

func (s *LocalStore) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	removeKey(s.kv, s.logger, KeyMeals)
	removeKey(s.kv, s.logger, KeyWaterLog)
	s.logger.Infof(providers.TypeStore, "History cleared")
}

// CleanExpiredData rewrites a collection only when it held expired records.
func (s *LocalStore) CleanExpiredData() models.SweepResult {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.SweepResult

	meals := s.loadMeals()
	before := len(meals)
	meals = slices.DeleteFunc(meals, func(m models.MealRecord) bool { return !s.fresh(m.Timestamp, now) })
	if result.Meals = before - len(meals); result.Meals > 0 {
		writeJSON(s.kv, s.logger, KeyMeals, meals)
	}

	entries := s.loadWater()
	before = len(entries)
	entries = slices.DeleteFunc(entries, func(e models.WaterLogEntry) bool { return !s.fresh(e.Timestamp, now) })
	if result.WaterEntries = before - len(entries); result.WaterEntries > 0 {
		writeJSON(s.kv, s.logger, KeyWaterLog, entries)
	}

	return result
}

func (s *LocalStore) GetStats() models.StoreStats {
	meals := s.GetMeals()
	stats := models.StoreStats{
		Meals:        len(meals),
		WaterEntries: len(s.GetWaterLog()),
	}
	for _, m := range meals {
		if stats.OldestMeal == nil || m.Timestamp < *stats.OldestMeal {
			ts := m.Timestamp
			stats.OldestMeal = &ts
		}
	}
	return stats
}

// GetGoals merges stored goals over the defaults.
func (s *LocalStore) GetGoals() models.DailyGoals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadGoals()
}

func (s *LocalStore) loadGoals() models.DailyGoals {
	goals := models.DefaultGoals()
	stored := goals
	if readJSON(s.kv, s.logger, KeyDailyGoals, &stored) {
		goals = stored
	}
	return goals
}

func (s *LocalStore) UpdateGoals(patch models.GoalsPatch) (models.DailyGoals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.loadGoals().Apply(patch)
	if err != nil {
		return goals, err
	}
	writeJSON(s.kv, s.logger, KeyDailyGoals, goals)
	return goals, nil
}

func (s *LocalStore) IsOnboardingComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var done bool
	readJSON(s.kv, s.logger, KeyOnboardingComplete, &done)
	return done
}

func (s *LocalStore) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(s.kv, s.logger, KeyOnboardingComplete, true)
}

func (s *LocalStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range allKeys {
		removeKey(s.kv, s.logger, key)
	}
	s.logger.Infof(providers.TypeStore, "All data cleared")
}
