package amqp

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestNewTransactionRecordedMessage(t *testing.T) {
	msg := NewTransactionRecordedMessage(core.KindExpense, "t1")

	if msg.Kind != core.KindExpense {
		t.Errorf("Kind = %v, want %v", msg.Kind, core.KindExpense)
	}
	if msg.ID != "t1" {
		t.Errorf("ID = %v, want t1", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestTransactionRecordedMessage_JSON(t *testing.T) {
	msg := &TransactionRecordedMessage{
		Kind:      core.KindIncome,
		ID:        "abc-123",
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionRecordedMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionRecordedMessageFromJSON() error = %v", err)
	}

	if parsed.Kind != msg.Kind || parsed.ID != msg.ID {
		t.Errorf("parsed %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionRecordedMessage_InvalidJSON(t *testing.T) {
	if _, err := TransactionRecordedMessageFromJSON([]byte(`{"kind": 5}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
