package models

type WaterLogEntry struct {
	Amount    int   `json:"amount"`
	Timestamp int64 `json:"timestamp"`
}
