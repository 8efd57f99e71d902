package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

func TestWarrantyClaimLifecycle(t *testing.T) {
	backend := newTestBackend(t)
	claims := NewWarrantyClaimRepository(backend)
	ctx := context.Background()

	added, err := claims.Add(ctx, &core.WarrantyClaim{
		RetailerName: "Apple",
		ItemInfo:     "MacBook keyboard",
		Method:       "Email",
		Status:       core.StatusPlanned,
	})
	if err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}

	status := core.StatusComplete
	notes := "replaced under warranty"
	updated, err := claims.Update(ctx, added.Id, &core.WarrantyClaimPatch{Status: &status, Notes: &notes})
	if err != nil {
		t.Fatalf("Failed to update claim: %v", err)
	}
	if updated.Status != core.StatusComplete || updated.Notes != notes {
		t.Fatalf("Patch not applied: %+v", updated)
	}

	_, err = claims.Update(ctx, "01JNOSUCHNOSUCHNOSUCHNOSU0", &core.WarrantyClaimPatch{Status: &status})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	if err := claims.Delete(ctx, added.Id); err != nil {
		t.Fatalf("Failed to delete claim: %v", err)
	}
	if got, _ := claims.Get(ctx, added.Id); got != nil {
		t.Fatal("Expected claim to be gone after delete")
	}
	if err := claims.Delete(ctx, added.Id); err != nil {
		t.Fatalf("Repeated delete must be a no-op, got %v", err)
	}
}

func TestWarrantyClaimGetByOrder(t *testing.T) {
	backend := newTestBackend(t)
	orders := NewOrderRepository(backend)
	claims := NewWarrantyClaimRepository(backend)
	ctx := context.Background()

	order, err := orders.Add(ctx, &core.Order{RetailerName: "Google Store", PurchaseDate: "2025-01-20"})
	if err != nil {
		t.Fatalf("Failed to add order: %v", err)
	}

	first, err := claims.Add(ctx, &core.WarrantyClaim{RetailerName: "Google Store", OrderId: order.Id})
	if err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}
	second, err := claims.Add(ctx, &core.WarrantyClaim{RetailerName: "Google Store", OrderId: order.Id})
	if err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}
	if _, err := claims.Add(ctx, &core.WarrantyClaim{RetailerName: "Google Store"}); err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}

	linked, err := claims.GetByOrder(ctx, order.Id)
	if err != nil {
		t.Fatalf("GetByOrder failed: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("Expected 2 linked claims, got %d", len(linked))
	}
	if linked[0].Id != first.Id || linked[1].Id != second.Id {
		t.Fatal("Expected linked claims oldest first")
	}
}

func TestWarrantyClaimRelinkOrder(t *testing.T) {
	backend := newTestBackend(t)
	orders := NewOrderRepository(backend)
	claims := NewWarrantyClaimRepository(backend)
	ctx := context.Background()

	a, err := orders.Add(ctx, &core.Order{RetailerName: "Amazon", PurchaseDate: "2025-02-01"})
	if err != nil {
		t.Fatalf("Failed to add order: %v", err)
	}
	b, err := orders.Add(ctx, &core.Order{RetailerName: "Amazon", PurchaseDate: "2025-02-02"})
	if err != nil {
		t.Fatalf("Failed to add order: %v", err)
	}

	claim, err := claims.Add(ctx, &core.WarrantyClaim{RetailerName: "Amazon", OrderId: a.Id})
	if err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}

	if _, err := claims.Update(ctx, claim.Id, &core.WarrantyClaimPatch{OrderId: &b.Id}); err != nil {
		t.Fatalf("Failed to relink claim: %v", err)
	}

	// Deleting the old order must no longer take the claim with it.
	if err := orders.Delete(ctx, a.Id); err != nil {
		t.Fatalf("Failed to delete order: %v", err)
	}
	if got, _ := claims.Get(ctx, claim.Id); got == nil {
		t.Fatal("Relinked claim must survive deleting its former order")
	}

	if err := orders.Delete(ctx, b.Id); err != nil {
		t.Fatalf("Failed to delete order: %v", err)
	}
	if got, _ := claims.Get(ctx, claim.Id); got != nil {
		t.Fatal("Claim must cascade with its current order")
	}
}

func TestWarrantyClaimDeleteCascadesCommunications(t *testing.T) {
	backend := newTestBackend(t)
	claims := NewWarrantyClaimRepository(backend)
	comms := NewCommunicationRepository(backend)
	ctx := context.Background()

	claim, err := claims.Add(ctx, &core.WarrantyClaim{RetailerName: "Best Buy", ItemInfo: "TV"})
	if err != nil {
		t.Fatalf("Failed to add claim: %v", err)
	}

	for _, msg := range []string{"opened claim", "sent photos"} {
		if _, err := comms.Add(ctx, &core.Communication{WarrantyClaimId: claim.Id, Message: msg}); err != nil {
			t.Fatalf("Failed to add communication: %v", err)
		}
	}

	if err := claims.Delete(ctx, claim.Id); err != nil {
		t.Fatalf("Failed to delete claim: %v", err)
	}

	left, err := comms.GetByWarrantyClaim(ctx, claim.Id)
	if err != nil {
		t.Fatalf("GetByWarrantyClaim failed: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("Expected no surviving communications, got %d", len(left))
	}
	all, err := comms.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("Cascade must remove the records, not just the parent index, got %d", len(all))
	}
}
