// Package session owns the server-side record behind a visitor's cookie
// token: the cart and the pending flash payload. The web layer resolves the
// cookie to a token; everything below it works with tokens only.
package session

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

// Record is one visitor's server-side state, serialized as JSON by the
// persistent store.
type Record struct {
	Cart  domain.Cart  `json:"cart"`
	Flash domain.Flash `json:"flash"`
}

// Store persists session records keyed by opaque token.
//
// Update runs fn as a read-modify-write that is serialized against other
// updates of the same token, so two concurrent requests on one session
// cannot lose each other's cart changes. Updates of different tokens do not
// block each other. A token that was never written reads as a zero Record.
type Store interface {
	Get(ctx context.Context, token string) (Record, error)
	Update(ctx context.Context, token string, fn func(rec *Record) error) error
	Delete(ctx context.Context, token string) error
}

// SetFlash stores a one-shot payload for the next rendered page.
func SetFlash(ctx context.Context, store Store, token string, flash domain.Flash) error {
	err := store.Update(ctx, token, func(rec *Record) error {
		rec.Flash = flash
		return nil
	})
	if err != nil {
		return fmt.Errorf("store.Update: %w", err)
	}

	return nil
}

// TakeFlash returns the pending payload and clears it in the same store
// update, so a page reload never sees it again.
func TakeFlash(ctx context.Context, store Store, token string) (domain.Flash, error) {
	var flash domain.Flash

	err := store.Update(ctx, token, func(rec *Record) error {
		flash = rec.Flash
		rec.Flash = domain.Flash{}
		return nil
	})
	if err != nil {
		return domain.Flash{}, fmt.Errorf("store.Update: %w", err)
	}

	return flash, nil
}
