package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/claimlog/claimlog/core"
)

func TestDocumentParents(t *testing.T) {
	backend := newTestBackend(t)
	docs := NewDocumentRepository(backend)
	ctx := context.Background()

	refundID := core.NewID()
	claimID := core.NewID()
	orderID := core.NewID()

	// A receipt can back an order and the refund raised against it.
	receipt, err := docs.Add(ctx, &core.Document{
		RefundId:    refundID,
		OrderId:     orderID,
		Name:        "receipt.pdf",
		ContentType: "application/pdf",
		Size:        20480,
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	photo, err := docs.Add(ctx, &core.Document{
		WarrantyClaimId: claimID,
		Name:            "damage.jpg",
		ContentType:     "image/jpeg",
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	byRefund, err := docs.GetByRefund(ctx, refundID)
	if err != nil {
		t.Fatalf("GetByRefund failed: %v", err)
	}
	if len(byRefund) != 1 || byRefund[0].Id != receipt.Id {
		t.Fatalf("Expected the receipt under its refund, got %d docs", len(byRefund))
	}

	byOrder, err := docs.GetByOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetByOrder failed: %v", err)
	}
	if len(byOrder) != 1 || byOrder[0].Id != receipt.Id {
		t.Fatalf("Expected the receipt under its order, got %d docs", len(byOrder))
	}

	byClaim, err := docs.GetByWarrantyClaim(ctx, claimID)
	if err != nil {
		t.Fatalf("GetByWarrantyClaim failed: %v", err)
	}
	if len(byClaim) != 1 || byClaim[0].Id != photo.Id {
		t.Fatalf("Expected the photo under its claim, got %d docs", len(byClaim))
	}

	all, err := docs.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 || all[0].Id != photo.Id {
		t.Fatal("Expected both documents, newest first")
	}
}

func TestDocumentValidation(t *testing.T) {
	backend := newTestBackend(t)
	docs := NewDocumentRepository(backend)
	ctx := context.Background()

	_, err := docs.Add(ctx, &core.Document{Name: "orphan.txt"})
	if !errors.Is(err, core.ErrMissingParentRef) {
		t.Fatalf("Expected ErrMissingParentRef, got %v", err)
	}

	_, err = docs.Add(ctx, &core.Document{RefundId: core.NewID()})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("Expected ErrEmptyName, got %v", err)
	}
}

func TestDocumentFingerprint(t *testing.T) {
	backend := newTestBackend(t)
	docs := NewDocumentRepository(backend)
	ctx := context.Background()

	payload := []byte("scan of the receipt")
	added, err := docs.Add(ctx, &core.Document{
		RefundId:    core.NewID(),
		Name:        "receipt.png",
		Fingerprint: core.Fingerprint(payload),
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	got, err := docs.Get(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if got.Fingerprint != core.Fingerprint(payload) {
		t.Fatal("Fingerprint must round-trip unchanged")
	}
}

func TestDocumentDeleteIdempotent(t *testing.T) {
	backend := newTestBackend(t)
	docs := NewDocumentRepository(backend)
	ctx := context.Background()

	added, err := docs.Add(ctx, &core.Document{OrderId: core.NewID(), Name: "label.pdf"})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := docs.Delete(ctx, added.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}
	if err := docs.Delete(ctx, added.Id); err != nil {
		t.Fatalf("Repeated delete must be a no-op, got %v", err)
	}
	if got, _ := docs.Get(ctx, added.Id); got != nil {
		t.Fatal("Expected document to be gone")
	}
}
