package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// TransactionRecordedMessage announces that a transaction was persisted.
// It carries only the kind and id; the worker loads the full row from the
// store before exporting it.
type TransactionRecordedMessage struct {
	Kind      core.Kind `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(kind core.Kind, id string) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON parses a message from JSON bytes.
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
