package badger

import (
	"context"
	"testing"

	"github.com/claimlog/claimlog/core"
)

func TestRetailerLifecycle(t *testing.T) {
	backend := newTestBackend(t)
	retailers := NewRetailerRepository(backend)
	ctx := context.Background()

	added, err := retailers.Add(ctx, &core.Retailer{
		Name:        "Newegg",
		Website:     "newegg.com",
		PhoneNumber: "1-800-390-1119",
	})
	if err != nil {
		t.Fatalf("Failed to add retailer: %v", err)
	}

	method := "Email"
	updated, err := retailers.Update(ctx, added.Id, &core.RetailerPatch{PreferredContactMethod: &method})
	if err != nil {
		t.Fatalf("Failed to update retailer: %v", err)
	}
	if updated.PreferredContactMethod != "Email" || updated.Website != "newegg.com" {
		t.Fatalf("Patch mismatch: %+v", updated)
	}

	if err := retailers.Delete(ctx, added.Id); err != nil {
		t.Fatalf("Failed to delete retailer: %v", err)
	}
	count, err := retailers.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected empty collection, got %d", count)
	}
}

func TestRetailerNameOrderingAndRename(t *testing.T) {
	backend := newTestBackend(t)
	retailers := NewRetailerRepository(backend)
	ctx := context.Background()

	var zappos *core.Retailer
	for _, name := range []string{"Zappos", "Costco", "IKEA"} {
		added, err := retailers.Add(ctx, &core.Retailer{Name: name})
		if err != nil {
			t.Fatalf("Failed to add retailer: %v", err)
		}
		if name == "Zappos" {
			zappos = added
		}
	}

	all, err := retailers.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Costco" || all[2].Name != "Zappos" {
		t.Fatalf("Expected alphabetical order, got %v", names(all))
	}

	// Renaming must move the record in the name index.
	newName := "Amazon"
	if _, err := retailers.Update(ctx, zappos.Id, &core.RetailerPatch{Name: &newName}); err != nil {
		t.Fatalf("Failed to rename retailer: %v", err)
	}

	all, err = retailers.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Amazon" {
		t.Fatalf("Expected renamed retailer first, got %v", names(all))
	}
}

func TestSeedRetailers(t *testing.T) {
	backend := newTestBackend(t)
	retailers := NewRetailerRepository(backend)
	ctx := context.Background()

	if err := backend.SeedRetailers(ctx, retailers); err != nil {
		t.Fatalf("Failed to seed retailers: %v", err)
	}

	all, err := retailers.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("Expected 6 seeded retailers, got %d", len(all))
	}
	if all[0].Name != "Amazon" || all[5].Name != "Walmart" {
		t.Fatalf("Unexpected seed order: %v", names(all))
	}

	// Seeding again is a no-op.
	if err := backend.SeedRetailers(ctx, retailers); err != nil {
		t.Fatalf("Repeated seed failed: %v", err)
	}
	count, err := retailers.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 6 {
		t.Fatalf("Repeated seed must not duplicate, got %d", count)
	}

	// A partially emptied collection is left alone too.
	if err := retailers.Delete(ctx, all[0].Id); err != nil {
		t.Fatalf("Failed to delete retailer: %v", err)
	}
	if err := backend.SeedRetailers(ctx, retailers); err != nil {
		t.Fatalf("Seed after delete failed: %v", err)
	}
	count, _ = retailers.Count(ctx)
	if count != 5 {
		t.Fatalf("Seed must skip non-empty collections, got %d", count)
	}
}

func names(retailers []*core.Retailer) []string {
	out := make([]string, len(retailers))
	for i, r := range retailers {
		out[i] = r.Name
	}
	return out
}
