package ports

import (
	"context"

	"go.trai.ch/godev/internal/core/domain"
)

// CheckoutCache owns the source checkout entries, keyed by commit. Entries
// are disposable: always reconstructible from the mirror, evictable without
// touching the artifact cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=checkout.go -destination=mocks/mock_checkout.go -package=mocks
type CheckoutCache interface {
	// Ensure returns the checkout directory for id, materializing it from
	// the mirror if absent. An existing directory is trusted as-is.
	Ensure(ctx context.Context, id domain.CommitID) (string, error)

	// Remove deletes the checkout for id if present.
	Remove(id domain.CommitID) error

	// EvictAll removes every checkout and reports how many were removed.
	// Paths that vanish concurrently are skipped, not errors.
	EvictAll() (int, error)
}
