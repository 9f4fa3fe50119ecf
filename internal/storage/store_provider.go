package storage

import (
	"fmt"
	"nutriscan/internal/providers"
	"nutriscan/internal/storage/interfaces"
	"nutriscan/internal/structures"
)

const (
	DriverFile   = "file"
	DriverSqlite = "sqlite"
)

// NewDurableStore opens the store selected by storage.driver.
func NewDurableStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.DurableStore, error) {
	switch conf.Storage.Driver {
	case DriverFile, "":
		logger.Infof(providers.TypeStore, "Using file store at %s", conf.Storage.FilePath)
		return NewFileStore(conf.Storage.FilePath, compressor, logger), nil
	case DriverSqlite:
		return NewSqliteStore(conf.Storage.FilePath, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}

// NewKeyValueStore exposes the durable store to services that only read and write keys.
func NewKeyValueStore(durable interfaces.DurableStore) interfaces.KeyValueStore {
	return durable
}
