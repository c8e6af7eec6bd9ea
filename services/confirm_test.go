package services

import (
	"testing"
	"time"
)

func TestDeleteConfirmer_RequestAndRedeem(t *testing.T) {
	d := NewDeleteConfirmer()

	token, expiresAt := d.Request("u1", "t1")
	if token == "" {
		t.Fatalf("expected a token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry must be in the future")
	}

	taskID, ok := d.Redeem("u1", token)
	if !ok || taskID != "t1" {
		t.Fatalf("expected redeem to yield t1, got %q ok=%v", taskID, ok)
	}

	// Tokens are single use.
	if _, ok := d.Redeem("u1", token); ok {
		t.Fatalf("token must not be redeemable twice")
	}
}

func TestDeleteConfirmer_WrongUser(t *testing.T) {
	d := NewDeleteConfirmer()
	token, _ := d.Request("u1", "t1")

	if _, ok := d.Redeem("u2", token); ok {
		t.Fatalf("another user's token must not redeem")
	}
	// Still redeemable by the owner.
	if _, ok := d.Redeem("u1", token); !ok {
		t.Fatalf("owner redeem should still succeed")
	}
}

func TestDeleteConfirmer_Expiry(t *testing.T) {
	d := NewDeleteConfirmer()
	current := time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return current }

	token, _ := d.Request("u1", "t1")
	current = current.Add(ConfirmTTL + time.Second)

	if _, ok := d.Redeem("u1", token); ok {
		t.Fatalf("expired token must not redeem")
	}
}

func TestDeleteConfirmer_Cancel(t *testing.T) {
	d := NewDeleteConfirmer()
	token, _ := d.Request("u1", "t1")

	if !d.Cancel("u1", token) {
		t.Fatalf("cancel of a pending token should succeed")
	}
	if _, ok := d.Redeem("u1", token); ok {
		t.Fatalf("cancelled token must not redeem")
	}
	if d.Cancel("u1", token) {
		t.Fatalf("double cancel should report not found")
	}
}
