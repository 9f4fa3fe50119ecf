package services

import (
	"nutriscan/internal/providers"
	"nutriscan/internal/storage/interfaces"

	json "github.com/goccy/go-json"
)

const (
	KeyMeals              = "meals"
	KeyWaterLog           = "waterLog"
	KeyDailyGoals         = "dailyGoals"
	KeyUserSession        = "userSession"
	KeyOnboardingComplete = "onboardingComplete"
)

var allKeys = []string{KeyMeals, KeyWaterLog, KeyDailyGoals, KeyUserSession, KeyOnboardingComplete}

// readJSON decodes key into dst. It reports false and leaves dst untouched
// when the key is missing or unreadable; failures are logged, never returned.
func readJSON(kv interfaces.KeyValueStore, logger providers.Logger, key string, dst any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Errorf(providers.TypeStore, "Error reading %s: %s", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		logger.Errorf(providers.TypeStore, "Error decoding %s, falling back to default: %s", key, err)
		return false
	}
	return true
}

func writeJSON(kv interfaces.KeyValueStore, logger providers.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Errorf(providers.TypeStore, "Error encoding %s: %s", key, err)
		return
	}
	if err = kv.Set(key, raw); err != nil {
		logger.Errorf(providers.TypeStore, "Error saving %s: %s", key, err)
	}
}

func removeKey(kv interfaces.KeyValueStore, logger providers.Logger, key string) {
	if err := kv.Remove(key); err != nil {
		logger.Errorf(providers.TypeStore, "Error removing %s: %s", key, err)
	}
}
