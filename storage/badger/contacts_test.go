package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/claimlog/claimlog/core"
)

func TestContactLifecycle(t *testing.T) {
	backend := newTestBackend(t)
	contacts := NewContactRepository(backend)
	ctx := context.Background()

	added, err := contacts.Add(ctx, &core.Contact{
		Name:           "Sarah",
		SocialPlatform: "Twitter",
		Handle:         "@AmazonHelp",
		Role:           "Support agent",
	})
	if err != nil {
		t.Fatalf("Failed to add contact: %v", err)
	}

	notes := "handled the hub return, very responsive"
	updated, err := contacts.Update(ctx, added.Id, &core.ContactPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("Failed to update contact: %v", err)
	}
	if updated.Notes != notes || updated.Handle != "@AmazonHelp" {
		t.Fatalf("Patch mismatch: %+v", updated)
	}

	if err := contacts.Delete(ctx, added.Id); err != nil {
		t.Fatalf("Failed to delete contact: %v", err)
	}
	if got, _ := contacts.Get(ctx, added.Id); got != nil {
		t.Fatal("Expected contact to be gone after delete")
	}
}

func TestContactValidationAndOrdering(t *testing.T) {
	backend := newTestBackend(t)
	contacts := NewContactRepository(backend)
	ctx := context.Background()

	_, err := contacts.Add(ctx, &core.Contact{Role: "nameless"})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("Expected ErrEmptyName, got %v", err)
	}

	for _, name := range []string{"Ana", "Ben", "Cleo"} {
		if _, err := contacts.Add(ctx, &core.Contact{Name: name}); err != nil {
			t.Fatalf("Failed to add contact: %v", err)
		}
	}

	all, err := contacts.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Cleo" {
		t.Fatalf("Expected newest contact first, got %+v", all)
	}
}
