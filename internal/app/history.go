package app

import (
	"context"
	"log/slog"

	"github.com/prmf/premium-api/internal/domain"
	"github.com/prmf/premium-api/internal/ports"
)

// HistoryService is the authenticated read-only view over a member's own
// quote history.
type HistoryService struct {
	history  ports.HistoryStore
	identity ports.IdentityProvider
	logger   *slog.Logger
}

// HistoryConfig contains dependencies for the history service.
type HistoryConfig struct {
	// HistoryStore is queried by owner. Required.
	HistoryStore ports.HistoryStore

	// Identity authorizes the caller's bearer credential. Required.
	Identity ports.IdentityProvider

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewHistoryService creates the history service.
// Panics if HistoryStore or Identity is nil.
func NewHistoryService(cfg HistoryConfig) *HistoryService {
	if cfg.HistoryStore == nil {
		panic("HistoryService: HistoryStore is required")
	}

	if cfg.Identity == nil {
		panic("HistoryService: Identity is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HistoryService{
		history:  cfg.HistoryStore,
		identity: cfg.Identity,
		logger:   logger,
	}
}

// List returns the caller's prior quotes, newest first, capped at
// domain.HistoryLimit. The cap is a hard bound, not a page size.
//
// An absent or unresolvable credential fails with domain.ErrUnauthorized;
// a persistence fault fails with domain.ErrStore.
func (s *HistoryService) List(ctx context.Context, token string) ([]domain.HistoryRecord, error) {
	if token == "" {
		return nil, domain.NewUnauthorizedError("missing bearer credential")
	}

	identity, err := s.identity.Resolve(ctx, token)
	if err != nil {
		s.logger.DebugContext(ctx, "credential resolution failed", slog.Any("error", err))

		if domain.IsUnauthorized(err) {
			return nil, err
		}

		return nil, domain.NewUnauthorizedError("invalid or expired session")
	}

	records, err := s.history.ListByOwner(ctx, identity.ID, domain.HistoryLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "history query failed",
			slog.String("owner_id", identity.ID),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.logger.InfoContext(ctx, "history listed",
		slog.String("owner_id", identity.ID),
		slog.Int("count", len(records)),
	)

	return records, nil
}
