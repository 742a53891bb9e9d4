package models

import "time"

// EventRef identifies one provider event
type EventRef struct {
	SportKey string `json:"sport_key"`
	EventID  string `json:"event_id"`
}

// KafkaOddsRefreshMessage asks the service to refresh odds for a batch of events
type KafkaOddsRefreshMessage struct {
	Events    []EventRef `json:"events"`
	Timestamp time.Time  `json:"timestamp"`
	BatchID   string     `json:"batch_id"`
}

// KafkaSelectionsMessage carries a freshly derived daily snapshot
type KafkaSelectionsMessage struct {
	Snapshot  DailySnapshot `json:"snapshot"`
	Timestamp time.Time     `json:"timestamp"`
	BatchID   string        `json:"batch_id"`
}
