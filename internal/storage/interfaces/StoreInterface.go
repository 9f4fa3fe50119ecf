package interfaces

// KeyValueStore holds raw JSON documents by key.
type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// DurableStore is a KeyValueStore backed by a device-local medium.
type DurableStore interface {
	KeyValueStore
	Load() error
	Flush() error
	Close() error
}
