package amqp

import (
	"encoding/json"
	"time"
)

// PlanSyncMessage announces a committed monthly plan. It carries only the
// month key and plan id; the worker reads the full plan from the persisted
// state.
type PlanSyncMessage struct {
	Month     string    `json:"month"`
	PlanID    string    `json:"planId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPlanSyncMessage creates a sync message for a committed plan.
func NewPlanSyncMessage(month, planID string) *PlanSyncMessage {
	return &PlanSyncMessage{
		Month:     month,
		PlanID:    planID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PlanSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PlanSyncMessageFromJSON creates a message from JSON bytes
func PlanSyncMessageFromJSON(data []byte) (*PlanSyncMessage, error) {
	var msg PlanSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
