package payment

import (
	"context"
	"sync"
	"time"

	"minecart-be/internal/logger"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the wall-clock delay between status checks.
	DefaultInterval = 5 * time.Second
	// DefaultMaxAttempts is the fixed attempt budget. It is deliberately not
	// derived from the charge's expires_at: 60 attempts at 5s gives the same
	// 5-minute watch window the storefront always had, even when the PIX code
	// itself lives longer.
	DefaultMaxAttempts = 60
	// DefaultGraceDelay is how long an approved payment stays on screen
	// before the completion callback fires.
	DefaultGraceDelay = 2 * time.Second
)

// Finalizer flips the order record once the gateway reports a terminal
// status. Satisfied by the order service.
type Finalizer interface {
	MarkAsPaid(ctx context.Context, referenceID string) error
	MarkAsFailed(ctx context.Context, referenceID string) error
}

// Reporter receives poll outcomes. The notification reporter turns these
// into persisted notifications and cache invalidations.
type Reporter interface {
	PaymentApproved(ctx context.Context, c Charge, attempts int)
	PaymentFailed(ctx context.Context, c Charge, status Status)
	PollTimedOut(ctx context.Context, c Charge, attempts int)
	StatusCheckFailed(ctx context.Context, c Charge, attempt int, err error)
}

// Charge identifies the payment being watched.
type Charge struct {
	OrderID     uint
	UserID      uint
	ReferenceID string
	PaymentID   string
}

type PollerConfig struct {
	Interval    time.Duration
	MaxAttempts int
	GraceDelay  time.Duration
}

func (c PollerConfig) withDefaults() PollerConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.GraceDelay < 0 {
		c.GraceDelay = DefaultGraceDelay
	}
	return c
}

// Poller watches charges until the gateway reports a terminal status or the
// attempt budget runs out. One watch per payment id; checks are serialized,
// so a stale non-terminal response can never land after a terminal one.
type Poller struct {
	gateway  StatusChecker
	orders   Finalizer
	reporter Reporter
	cfg      PollerConfig

	mu     sync.Mutex
	active map[string]context.CancelFunc
}

func NewPoller(gateway StatusChecker, orders Finalizer, reporter Reporter, cfg PollerConfig) *Poller {
	return &Poller{
		gateway:  gateway,
		orders:   orders,
		reporter: reporter,
		cfg:      cfg.withDefaults(),
		active:   make(map[string]context.CancelFunc),
	}
}

// Watch starts a background watch for the charge. The first status check is
// issued immediately, not on the first tick. onComplete runs after the grace
// delay following approval; it is never called on other outcomes. The
// returned cancel tears the watch down without emitting anything further.
func (p *Poller) Watch(ctx context.Context, c Charge, onComplete func()) (context.CancelFunc, error) {
	p.mu.Lock()
	if _, exists := p.active[c.PaymentID]; exists {
		p.mu.Unlock()
		return nil, ErrWatchExists
	}

	wctx, cancel := context.WithCancel(ctx)
	p.active[c.PaymentID] = cancel
	p.mu.Unlock()

	go p.run(wctx, c, onComplete)
	return cancel, nil
}

// Watching reports whether a watch is active for the payment id.
func (p *Poller) Watching(paymentID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[paymentID]
	return ok
}

// Cancel tears down an active watch. Returns false when nothing was
// watching the payment id.
func (p *Poller) Cancel(paymentID string) bool {
	p.mu.Lock()
	cancel, ok := p.active[paymentID]
	p.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

func (p *Poller) release(paymentID string) {
	p.mu.Lock()
	if cancel, ok := p.active[paymentID]; ok {
		delete(p.active, paymentID)
		cancel()
	}
	p.mu.Unlock()
}

func (p *Poller) run(ctx context.Context, c Charge, onComplete func()) {
	defer p.release(c.PaymentID)

	log := logger.L().With(
		zap.String("payment_id", c.PaymentID),
		zap.String("reference_id", c.ReferenceID),
		zap.Uint("order_id", c.OrderID),
	)
	log.Info("payment watch started")

	for attempt := 1; ; attempt++ {
		status, err := p.gateway.GetChargeStatus(ctx, c.PaymentID)

		// A cancel that lands mid-request must stay silent.
		if ctx.Err() != nil {
			log.Info("payment watch cancelled", zap.Int("attempt", attempt))
			return
		}

		if err != nil {
			// Transport errors are transient: report and keep the loop alive.
			log.Warn("status check failed", zap.Int("attempt", attempt), zap.Error(err))
			p.reporter.StatusCheckFailed(ctx, c, attempt, err)
		} else {
			switch status.Status {
			case StatusApproved:
				p.approve(ctx, c, attempt, onComplete, log)
				return
			case StatusRejected, StatusCancelled:
				p.fail(ctx, c, status.Status, log)
				return
			default:
				// pending/processing: nothing visible happens, the counter
				// just moves on
			}
		}

		if attempt >= p.cfg.MaxAttempts {
			log.Warn("payment watch exhausted attempt budget", zap.Int("attempts", attempt))
			p.reporter.PollTimedOut(ctx, c, attempt)
			return
		}

		select {
		case <-ctx.Done():
			log.Info("payment watch cancelled", zap.Int("attempt", attempt))
			return
		case <-time.After(p.cfg.Interval):
		}
	}
}

func (p *Poller) approve(ctx context.Context, c Charge, attempts int, onComplete func(), log *zap.Logger) {
	log.Info("payment approved", zap.Int("attempts", attempts))

	if err := p.orders.MarkAsPaid(ctx, c.ReferenceID); err != nil {
		log.Error("failed to mark order as paid", zap.Error(err))
	}

	p.reporter.PaymentApproved(ctx, c, attempts)

	// Let the success state sit on screen before completion fires.
	select {
	case <-ctx.Done():
		return
	case <-time.After(p.cfg.GraceDelay):
	}

	if onComplete != nil {
		onComplete()
	}
}

func (p *Poller) fail(ctx context.Context, c Charge, status Status, log *zap.Logger) {
	log.Warn("payment reached failure status", zap.String("status", string(status)))

	if err := p.orders.MarkAsFailed(ctx, c.ReferenceID); err != nil {
		log.Error("failed to mark order as failed", zap.Error(err))
	}

	p.reporter.PaymentFailed(ctx, c, status)
}
