package confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lashstudio/pkg/logger"
	"lashstudio/pkg/metrics"
	"lashstudio/pkg/model"

	"github.com/google/uuid"
)

// Sink receives every confirmed booking.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, r Receipt) error
}

type Dispatcher struct {
	cfg     ReceiptConfig
	sinks   []Sink
	now     func() time.Time
	newID   func() string
	metrics *metrics.BookingMetrics
	log     *logger.Logger
}

type Option func(*Dispatcher)

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(d *Dispatcher) {
		if newID != nil {
			d.newID = newID
		}
	}
}

func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

func WithLogger(log *logger.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

func NewDispatcher(cfg ReceiptConfig, sinks []Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:   cfg,
		sinks: sinks,
		now:   time.Now,
		newID: uuid.NewString,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Prepare builds the receipt for b without delivering it.
func (d *Dispatcher) Prepare(b model.CompletedBooking) Receipt {
	return NewReceipt(d.newID(), b, d.now().UTC(), d.cfg)
}

// Deliver hands r to every sink. All sinks are attempted; their failures
// are joined.
func (d *Dispatcher) Deliver(ctx context.Context, r Receipt) error {
	var errs []error
	for _, sink := range d.sinks {
		err := sink.Deliver(ctx, r)
		d.metrics.ObserveDelivery(sink.Name(), err)
		if err != nil {
			d.log.Error("confirmation delivery failed",
				"sink", sink.Name(),
				"receipt_id", r.ID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		d.log.Debug("confirmation delivered", "sink", sink.Name(), "receipt_id", r.ID)
	}
	return errors.Join(errs...)
}

