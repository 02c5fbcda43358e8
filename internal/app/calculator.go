package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/prmf/premium-api/internal/domain"
	"github.com/prmf/premium-api/internal/ports"
)

// CalculatorService orchestrates the premium calculation use case:
// validate the request, resolve the rate row, classify the payment
// cadence, compose the quote, and record it to history as a detached
// best-effort side effect.
type CalculatorService struct {
	rates          ports.RateStore
	history        ports.HistoryStore
	identity       ports.IdentityProvider
	logger         *slog.Logger
	historyTimeout time.Duration
}

// CalculatorConfig contains dependencies for the calculator service.
type CalculatorConfig struct {
	// RateStore resolves premium rates by exact (age, family size). Required.
	RateStore ports.RateStore

	// HistoryStore receives the fire-and-forget quote records. Optional;
	// when nil, quotes are not recorded.
	HistoryStore ports.HistoryStore

	// Identity resolves an optional inbound bearer credential so the
	// history record can be tagged with its owner. Optional.
	Identity ports.IdentityProvider

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// HistoryTimeout bounds the detached history write.
	HistoryTimeout time.Duration
}

// NewCalculatorService creates the calculator service.
// Panics if RateStore is nil.
func NewCalculatorService(cfg CalculatorConfig) *CalculatorService {
	if cfg.RateStore == nil {
		panic("CalculatorService: RateStore is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.HistoryTimeout
	if timeout <= 0 {
		timeout = DefaultDetachTimeout
	}

	return &CalculatorService{
		rates:          cfg.RateStore,
		history:        cfg.HistoryStore,
		identity:       cfg.Identity,
		logger:         logger,
		historyTimeout: timeout,
	}
}

// Calculate validates the untyped request payload and produces a quote.
// token is the optional inbound bearer credential; it only tags the
// history side effect and never gates the calculation itself.
//
// Returned errors are domain errors: validation faults, ErrRateNotFound
// for a valid request with no rate row, or ErrStore for a persistence
// fault during lookup.
func (s *CalculatorService) Calculate(ctx context.Context, payload any, token string) (*domain.Quote, error) {
	req, err := domain.ParseQuoteRequest(payload)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.Find(ctx, req.Age, req.FamilySize)
	if err != nil {
		if domain.IsRateNotFound(err) {
			s.logger.WarnContext(ctx, "no premium rate for combination",
				slog.Int("age", req.Age),
				slog.String("family_size", string(req.FamilySize)),
			)
			return nil, err
		}

		s.logger.ErrorContext(ctx, "rate lookup failed",
			slog.Int("age", req.Age),
			slog.String("family_size", string(req.FamilySize)),
			slog.Any("error", err),
		)

		return nil, err
	}

	quote := domain.NewQuote(req, rate)

	s.logger.InfoContext(ctx, "premium calculated",
		slog.Int("age", quote.Age),
		slog.String("family_size", string(quote.FamilySize)),
		slog.String("benefit_option", string(quote.BenefitOption)),
		slog.String("payment_type", string(quote.PaymentType)),
	)

	s.recordHistory(ctx, quote, token)

	return quote, nil
}

// recordHistory dispatches the history append without awaiting it. A
// failure here is logged and ignored; it must never fail or delay the
// calculation response. Credential resolution failures are swallowed and
// the record is stored ownerless.
func (s *CalculatorService) recordHistory(ctx context.Context, quote *domain.Quote, token string) {
	if s.history == nil {
		return
	}

	Detach(ctx, "quote history append", s.historyTimeout, func(taskCtx context.Context) error {
		ownerID := ""

		if token != "" && s.identity != nil {
			identity, err := s.identity.Resolve(taskCtx, token)
			if err != nil {
				s.logger.DebugContext(taskCtx, "history owner resolution failed, recording anonymously",
					slog.Any("error", err),
				)
			} else {
				ownerID = identity.ID
			}
		}

		return s.history.Append(taskCtx, domain.NewHistoryRecord(quote, ownerID))
	})
}
