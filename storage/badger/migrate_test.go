package badger

import (
	"bytes"
	"context"
	"testing"

	"github.com/claimlog/claimlog/core"
)

func TestMigrateBackfillsRefundDeadlines(t *testing.T) {
	backend := newTestBackend(t)
	refunds := NewRefundRepository(backend)
	ctx := context.Background()

	// A pre-deadline-era record: no delivered date, no deadline.
	legacy, err := refunds.Add(ctx, &core.Refund{RetailerName: "Amazon", Amount: 30})
	if err != nil {
		t.Fatalf("Failed to add refund: %v", err)
	}

	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	got, err := refunds.Get(ctx, legacy.Id)
	if err != nil {
		t.Fatalf("Failed to get refund: %v", err)
	}
	today := core.Today()
	if got.DeliveredDate != today {
		t.Fatalf("Expected delivered date backfilled to today, got %q", got.DeliveredDate)
	}
	if got.ReturnDeadline != today.AddDays(30) {
		t.Fatalf("Expected deadline 30 days out, got %q", got.ReturnDeadline)
	}
}

func TestMigrateLeavesCompleteRecordsUntouched(t *testing.T) {
	backend := newTestBackend(t)
	refunds := NewRefundRepository(backend)
	ctx := context.Background()

	complete, err := refunds.Add(ctx, &core.Refund{
		RetailerName:   "Target",
		DeliveredDate:  "2025-05-01",
		ReturnDeadline: "2025-05-31",
	})
	if err != nil {
		t.Fatalf("Failed to add refund: %v", err)
	}

	before, err := backend.rawRecordValue(refundPrefix, complete.Id)
	if err != nil {
		t.Fatalf("Failed to read raw record: %v", err)
	}

	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	after, err := backend.rawRecordValue(refundPrefix, complete.Id)
	if err != nil {
		t.Fatalf("Failed to read raw record: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("Migration must not rewrite records that already carry both dates")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	backend := newTestBackend(t)
	refunds := NewRefundRepository(backend)
	ctx := context.Background()

	legacy, err := refunds.Add(ctx, &core.Refund{RetailerName: "Walmart"})
	if err != nil {
		t.Fatalf("Failed to add refund: %v", err)
	}

	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("First migrate failed: %v", err)
	}
	first, err := backend.rawRecordValue(refundPrefix, legacy.Id)
	if err != nil {
		t.Fatalf("Failed to read raw record: %v", err)
	}

	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
	second, err := backend.rawRecordValue(refundPrefix, legacy.Id)
	if err != nil {
		t.Fatalf("Failed to read raw record: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("Repeated migration must be bit for bit a no-op")
	}

	present, err := backend.SchemaMarkerPresent()
	if err != nil {
		t.Fatalf("SchemaMarkerPresent failed: %v", err)
	}
	if !present {
		t.Fatal("Migrate must leave a schema version marker")
	}
}
