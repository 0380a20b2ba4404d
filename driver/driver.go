// Package driver turns wall-clock time into simulation ticks. It measures
// the delta between successive frames and forwards it to a Ticker, skipping
// frames where no time has passed.
package driver

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Ticker advances a simulation by dt seconds. timeMillis is the wall-clock
// time of the tick in milliseconds.
type Ticker interface {
	Tick(dt, timeMillis float64) error
}

// TickerFunc adapts a function to the Ticker interface.
type TickerFunc func(dt, timeMillis float64) error

// Tick calls f(dt, timeMillis).
func (f TickerFunc) Tick(dt, timeMillis float64) error {
	return f(dt, timeMillis)
}

// Driver owns the last-tick timestamp. It is not safe for concurrent use;
// one tick completes before the next is measured.
type Driver struct {
	ticker Ticker
	now    func() time.Time
	last   time.Time
	ticks  int64
	logger zerolog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// WithLogger sets the logger used for tick diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// New creates a driver for ticker. The first measured delta starts at the
// moment New is called.
func New(ticker Ticker, opts ...Option) *Driver {
	d := &Driver{
		ticker: ticker,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.last = d.now()
	return d
}

// Ticks returns the number of ticks forwarded so far.
func (d *Driver) Ticks() int64 {
	return d.ticks
}

// Advance measures the time since the previous call and, when it is
// positive, runs one tick. It reports whether a tick ran.
func (d *Driver) Advance() (bool, error) {
	now := d.now()
	dt := now.Sub(d.last).Seconds()
	d.last = now

	if dt <= 0 {
		return false, nil
	}

	if err := d.ticker.Tick(dt, millis(now)); err != nil {
		return false, err
	}
	d.ticks++
	return true, nil
}

// Run calls Advance every interval until ctx is cancelled or a tick fails.
// The interval only paces the loop; every tick uses the measured delta.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Debug().Dur("interval", interval).Msg("driver started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug().Int64("ticks", d.ticks).Msg("driver stopped")
			return nil
		case <-ticker.C:
			if _, err := d.Advance(); err != nil {
				d.logger.Error().Err(err).Int64("ticks", d.ticks).Msg("tick failed")
				return err
			}
		}
	}
}

func millis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}
