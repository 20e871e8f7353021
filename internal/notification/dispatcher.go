package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mmartinez10/event-invitations-backend/config"
)

// Dispatcher wraps a Channel call with bounded exponential-backoff retry.
// Policy: transient errors are retried with delay = base * multiplier^(n-1),
// permanent errors fail immediately, and the last error after exhausting the
// attempts is surfaced wrapped, never swallowed.
type Dispatcher struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  int
	Timeout     time.Duration

	// sleep is replaceable in tests
	sleep func(time.Duration)
}

func NewDispatcher(cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		MaxAttempts: cfg.DispatchMaxAttempts,
		BaseDelay:   cfg.DispatchBaseDelay,
		Multiplier:  cfg.DispatchMultiplier,
		Timeout:     cfg.ProviderTimeout,
		sleep:       time.Sleep,
	}
}

// DispatchWithRetry sends msg over ch, retrying transient failures.
// Returns the number of attempts performed and the final error, if any.
func (d *Dispatcher) DispatchWithRetry(ctx context.Context, ch Channel, destino string, msg Message) (int, error) {
	maxAttempts := d.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := d.sendBounded(ctx, ch, destino, msg)
		if err == nil {
			if attempt > 1 {
				log.Printf("✅ Envio por %s exitoso en el intento %d", ch.Name(), attempt)
			}
			return attempt, nil
		}

		lastErr = err
		if IsPermanent(err) {
			log.Printf("❌ Error permanente en canal %s, sin reintentos: %v", ch.Name(), err)
			return attempt, fmt.Errorf("envio por %s fallido: %w", ch.Name(), err)
		}

		if attempt < maxAttempts {
			delay := d.backoff(attempt)
			log.Printf("⚠️ Intento %d/%d por %s fallido, reintentando en %v: %v",
				attempt, maxAttempts, ch.Name(), delay, err)
			d.sleep(delay)
		}
	}

	log.Printf("❌ Envio por %s agotado tras %d intentos: %v", ch.Name(), maxAttempts, lastErr)
	return maxAttempts, fmt.Errorf("envio por %s fallido tras %d intentos: %w", ch.Name(), maxAttempts, lastErr)
}

// sendBounded bounds one provider call. Channels that block past the timeout
// are abandoned and the attempt counts as transient.
func (d *Dispatcher) sendBounded(ctx context.Context, ch Channel, destino string, msg Message) error {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ch.Send(ctx, destino, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return NewTransientError(fmt.Errorf("canal %s excedio el tiempo limite de %v", ch.Name(), timeout))
	}
}

func (d *Dispatcher) backoff(attempt int) time.Duration {
	delay := d.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	multiplier := d.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	for i := 1; i < attempt; i++ {
		delay *= time.Duration(multiplier)
	}
	return delay
}
