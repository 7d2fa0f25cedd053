package models

// ChangeEvent is published to Kafka after a successful write.
type ChangeEvent struct {
	EventID   string `json:"event_id"`
	Resource  string `json:"resource"`
	Action    string `json:"action"` // created, updated, deleted
	RecordID  string `json:"record_id"`
	Timestamp int64  `json:"timestamp"`
}
