// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application
// layer to depend on abstractions rather than concrete backends.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrRateNotFound, ErrStore, ...)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/prmf/premium-api/internal/domain"
)

// RateStore is the exact-match lookup over the externally managed rate
// table. The table is read-only from this service's perspective.
type RateStore interface {
	// Find returns the rate row for the exact (age, familySize) key.
	// Returns domain.ErrRateNotFound (wrapped) when no row exists for the
	// pair, and domain.ErrStore (wrapped) on a persistence fault. The two
	// must never be conflated.
	Find(ctx context.Context, age int, familySize domain.FamilySize) (*domain.RateRecord, error)
}

// HistoryStore is the append-only log of past quotes.
type HistoryStore interface {
	// Append inserts a single history record. Records are never updated
	// or deleted by this service; retention is an external policy concern.
	// Returns domain.ErrStore (wrapped) on a persistence fault.
	Append(ctx context.Context, record *domain.HistoryRecord) error

	// ListByOwner returns the owner's records, newest first, capped at
	// limit. Returns domain.ErrStore (wrapped) on a persistence fault.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.HistoryRecord, error)
}

// IdentityProvider resolves bearer credentials to identities. The provider
// itself (token format, sessions, expiry) is an external collaborator.
type IdentityProvider interface {
	// Resolve validates the credential and returns the identity it belongs
	// to. Returns domain.ErrUnauthorized (wrapped) for missing, invalid or
	// expired credentials.
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
}

// RateSeeder extends RateStore with bulk loading, used by the seed command
// to import the externally managed rate table.
type RateSeeder interface {
	// ReplaceAll atomically replaces the rate table contents.
	ReplaceAll(ctx context.Context, rates []domain.RateRecord) error
}
