package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel fails with the queued errors in order, then succeeds
type fakeChannel struct {
	nombre   string
	fallos   []error
	llamadas int
}

func (f *fakeChannel) Name() string { return f.nombre }

func (f *fakeChannel) Send(ctx context.Context, destino string, msg Message) error {
	f.llamadas++
	if len(f.fallos) > 0 {
		err := f.fallos[0]
		f.fallos = f.fallos[1:]
		return err
	}
	return nil
}

func newTestDispatcher(base time.Duration) (*Dispatcher, *[]time.Duration) {
	esperas := &[]time.Duration{}
	d := &Dispatcher{
		MaxAttempts: 3,
		BaseDelay:   base,
		Multiplier:  2,
		Timeout:     time.Second,
		sleep:       func(dur time.Duration) { *esperas = append(*esperas, dur) },
	}
	return d, esperas
}

func TestDispatchTransientThenSuccess(t *testing.T) {
	ch := &fakeChannel{
		nombre: CanalCorreo,
		fallos: []error{
			NewTransientError(errors.New("conexion rechazada")),
			NewTransientError(errors.New("conexion rechazada")),
		},
	}
	d, esperas := newTestDispatcher(1000 * time.Millisecond)

	intentos, err := d.DispatchWithRetry(context.Background(), ch, "a@b.com", Message{})

	require.NoError(t, err)
	assert.Equal(t, 3, intentos)
	assert.Equal(t, 3, ch.llamadas)
	// backoff: base, then base*multiplier
	require.Len(t, *esperas, 2)
	assert.GreaterOrEqual(t, (*esperas)[0], 1000*time.Millisecond)
	assert.GreaterOrEqual(t, (*esperas)[1], 2000*time.Millisecond)
}

func TestDispatchPermanentNoRetry(t *testing.T) {
	ch := &fakeChannel{
		nombre: CanalCorreo,
		fallos: []error{
			NewPermanentError(errors.New("direccion invalida")),
			nil, // would succeed, must never be reached
		},
	}
	d, esperas := newTestDispatcher(time.Millisecond)

	intentos, err := d.DispatchWithRetry(context.Background(), ch, "a@b.com", Message{})

	require.Error(t, err)
	assert.Equal(t, 1, intentos)
	assert.Equal(t, 1, ch.llamadas)
	assert.Empty(t, *esperas)
	assert.True(t, IsPermanent(err))
}

func TestDispatchExhaustedSurfacesLastError(t *testing.T) {
	ch := &fakeChannel{
		nombre: CanalWhatsApp,
		fallos: []error{
			NewTransientError(errors.New("timeout 1")),
			NewTransientError(errors.New("timeout 2")),
			NewTransientError(errors.New("timeout 3")),
		},
	}
	d, _ := newTestDispatcher(time.Millisecond)

	intentos, err := d.DispatchWithRetry(context.Background(), ch, "0991234567", Message{})

	require.Error(t, err)
	assert.Equal(t, 3, intentos)
	assert.Contains(t, err.Error(), "tras 3 intentos")
	assert.Contains(t, err.Error(), "timeout 3")
}

func TestDispatchTimeoutCountsAsTransient(t *testing.T) {
	bloqueado := &blockedChannel{}
	d := &Dispatcher{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
		Timeout:     10 * time.Millisecond,
		sleep:       func(time.Duration) {},
	}

	intentos, err := d.DispatchWithRetry(context.Background(), bloqueado, "a@b.com", Message{})

	require.Error(t, err)
	assert.Equal(t, 2, intentos)
	assert.False(t, IsPermanent(err))
}

type blockedChannel struct{}

func (b *blockedChannel) Name() string { return CanalCorreo }

func (b *blockedChannel) Send(ctx context.Context, destino string, msg Message) error {
	<-ctx.Done()
	// keep blocking a little past cancellation to exercise abandonment
	time.Sleep(5 * time.Millisecond)
	return ctx.Err()
}
