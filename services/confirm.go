package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConfirmTTL is how long a pending delete stays redeemable before the
// request has to be made again.
const ConfirmTTL = 2 * time.Minute

type pendingDelete struct {
	userID    string
	taskID    string
	expiresAt time.Time
}

// DeleteConfirmer implements the two-phase task delete: requesting a delete
// yields a single-use token, and only redeeming that token performs the
// actual removal. Tokens are held in memory only; a restart simply cancels
// outstanding confirmations.
type DeleteConfirmer struct {
	mu      sync.Mutex
	pending map[string]pendingDelete
	now     func() time.Time
}

func NewDeleteConfirmer() *DeleteConfirmer {
	return &DeleteConfirmer{
		pending: map[string]pendingDelete{},
		now:     time.Now,
	}
}

// Request registers a pending delete and returns its token and expiry.
func (d *DeleteConfirmer) Request(userID, taskID string) (string, time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweep()

	token := uuid.New().String()
	expiresAt := d.now().Add(ConfirmTTL)
	d.pending[token] = pendingDelete{userID: userID, taskID: taskID, expiresAt: expiresAt}
	return token, expiresAt
}

// Redeem consumes the token and returns the task id it was issued for. It
// fails when the token is unknown, expired, or belongs to another user.
func (d *DeleteConfirmer) Redeem(userID, token string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[token]
	if !ok || p.userID != userID {
		return "", false
	}
	delete(d.pending, token)
	if d.now().After(p.expiresAt) {
		return "", false
	}
	return p.taskID, true
}

// Cancel discards a pending delete without performing it.
func (d *DeleteConfirmer) Cancel(userID, token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[token]
	if !ok || p.userID != userID {
		return false
	}
	delete(d.pending, token)
	return true
}

func (d *DeleteConfirmer) sweep() {
	now := d.now()
	for token, p := range d.pending {
		if now.After(p.expiresAt) {
			delete(d.pending, token)
		}
	}
}
