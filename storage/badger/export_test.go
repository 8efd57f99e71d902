package badger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/claimlog/claimlog/core"
)

func TestExportSnapshot(t *testing.T) {
	backend := newTestBackend(t)
	orders := NewOrderRepository(backend)
	refunds := NewRefundRepository(backend)
	comms := NewCommunicationRepository(backend)
	ctx := context.Background()

	order, err := orders.Add(ctx, &core.Order{RetailerName: "Amazon", PurchaseDate: "2025-07-01"})
	if err != nil {
		t.Fatalf("Failed to add order: %v", err)
	}
	refund, err := refunds.Add(ctx, &core.Refund{RetailerName: "Amazon", Amount: 12.50})
	if err != nil {
		t.Fatalf("Failed to add refund: %v", err)
	}
	if _, err := comms.Add(ctx, &core.Communication{RefundId: refund.Id, Message: "requested refund"}); err != nil {
		t.Fatalf("Failed to add communication: %v", err)
	}

	snap, err := backend.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	if len(snap.Orders) != 1 || snap.Orders[0].Id != order.Id {
		t.Fatalf("Snapshot orders mismatch: %+v", snap.Orders)
	}
	if len(snap.Refunds) != 1 || len(snap.Communications) != 1 {
		t.Fatalf("Snapshot counts mismatch: %d refunds, %d communications", len(snap.Refunds), len(snap.Communications))
	}
	if snap.ExportedAt.IsZero() {
		t.Fatal("Snapshot must record its export time")
	}

	// Empty collections serialize as arrays, not null.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Failed to decode snapshot JSON: %v", err)
	}
	for _, field := range []string{"contacts", "documents", "warrantyClaims", "retailers"} {
		if string(decoded[field]) != "[]" {
			t.Fatalf("Expected empty array for %s, got %s", field, decoded[field])
		}
	}

	// Records written after the export do not appear in it.
	if _, err := orders.Add(ctx, &core.Order{RetailerName: "Target"}); err != nil {
		t.Fatalf("Failed to add order: %v", err)
	}
	if len(snap.Orders) != 1 {
		t.Fatal("Snapshot must be a point-in-time copy")
	}
}

func TestClearAll(t *testing.T) {
	backend := newTestBackend(t)
	orders := NewOrderRepository(backend)
	refunds := NewRefundRepository(backend)
	claims := NewWarrantyClaimRepository(backend)
	contacts := NewContactRepository(backend)
	comms := NewCommunicationRepository(backend)
	docs := NewDocumentRepository(backend)
	retailers := NewRetailerRepository(backend)
	ctx := context.Background()

	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := backend.SeedRetailers(ctx, retailers); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	refund, err := refunds.Add(ctx, &core.Refund{RetailerName: "Apple"})
	if err != nil {
		t.Fatalf("Failed to add refund: %v", err)
	}
	if _, err := orders.Add(ctx, &core.Order{RetailerName: "Apple"}); err != nil {
		t.Fatalf("Failed to add order: %v", err)
	}
	if _, err := claims.Add(ctx, &core.WarrantyClaim{RetailerName: "Apple"}); err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}
	if _, err := contacts.Add(ctx, &core.Contact{Name: "Lee"}); err != nil {
		t.Fatalf("Failed to add contact: %v", err)
	}
	if _, err := comms.Add(ctx, &core.Communication{RefundId: refund.Id, Message: "hello"}); err != nil {
		t.Fatalf("Failed to add communication: %v", err)
	}
	if _, err := docs.Add(ctx, &core.Document{RefundId: refund.Id, Name: "slip.pdf"}); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := backend.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	snap, err := backend.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}
	if snap.TotalRecords() != 0 {
		t.Fatalf("Expected empty store after ClearAll, got %d records", snap.TotalRecords())
	}

	// The schema marker survives the reset.
	present, err := backend.SchemaMarkerPresent()
	if err != nil {
		t.Fatalf("SchemaMarkerPresent failed: %v", err)
	}
	if !present {
		t.Fatal("ClearAll must keep the schema version marker")
	}

	// A cleared store seeds again like a fresh one.
	if err := backend.SeedRetailers(ctx, retailers); err != nil {
		t.Fatalf("Seed after clear failed: %v", err)
	}
	count, err := retailers.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 6 {
		t.Fatalf("Expected reseeded defaults, got %d", count)
	}
}
