package export

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestJSONLExporterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transactions.jsonl")
	e, err := NewJSONLExporter(path)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	ctx := context.Background()
	tx := core.Transaction{
		ID:          "t1",
		UserID:      "u1",
		Name:        "Lunch",
		Amount:      12.5,
		Description: "meal",
		Location:    "cafe",
		Timestamp:   time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC).UnixNano(),
	}

	if err := e.Export(ctx, NewRecord(core.KindExpense, tx, "alice")); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := e.Export(ctx, NewRecord(core.KindIncome, core.Transaction{ID: "t2", Name: "Pay", Amount: 100}, "alice")); err != nil {
		t.Fatalf("export second: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export file: %v", err)
	}
	defer f.Close()

	var recs []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		recs = append(recs, r)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Kind != core.KindExpense || recs[0].Name != "Lunch" || recs[0].Username != "alice" {
		t.Fatalf("first record mismatch: %+v", recs[0])
	}
	if recs[1].Kind != core.KindIncome || recs[1].ID != "t2" {
		t.Fatalf("second record mismatch: %+v", recs[1])
	}
}
