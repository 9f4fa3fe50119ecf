package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"nutriscan/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.saveInterval", 30*time.Second)
	v.SetDefault("retention.window", 24*time.Hour)
	v.SetDefault("retention.sweepInterval", 15*time.Minute)
	v.SetDefault("entitlement.freeQuota", 3)
	v.SetDefault("entitlement.ownerQuota", 999)
	v.SetDefault("analysis.timeout", 30*time.Second)
	v.SetDefault("analysis.cacheTTL", 10*time.Minute)

	v.BindEnv("logger.level", "NUTRISCAN_LOG_LEVEL")
	v.BindEnv("webServer.port", "NUTRISCAN_PORT")
	v.BindEnv("storage.driver", "NUTRISCAN_STORAGE_DRIVER")
	v.BindEnv("storage.filePath", "NUTRISCAN_STORAGE_PATH")
	v.BindEnv("analysis.endpoint", "NUTRISCAN_ANALYSIS_ENDPOINT")
	v.BindEnv("entitlement.freeQuota", "NUTRISCAN_FREE_QUOTA")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "NutriScan"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
