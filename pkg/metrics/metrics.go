package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lashstudio"

// BookingMetrics records wizard traffic, slot lookups and confirmation
// deliveries. A nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	sessionsStarted     prometheus.Counter
	eventsTotal         *prometheus.CounterVec
	bookingsCompleted   *prometheus.CounterVec
	availabilityLatency *prometheus.HistogramVec
	deliveriesTotal     *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "sessions_started_total",
			Help:      "Booking sessions opened",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "events_total",
			Help:      "Wizard events by type and whether they were applied",
		}, []string{"event", "applied"}),
		bookingsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "bookings_completed_total",
			Help:      "Completed bookings by service",
		}, []string{"service"}),
		availabilityLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "availability",
			Name:      "lookup_seconds",
			Help:      "Latency of slot lookups",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "confirmation",
			Name:      "deliveries_total",
			Help:      "Confirmation deliveries by sink and status",
		}, []string{"sink", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.eventsTotal, m.bookingsCompleted, m.availabilityLatency, m.deliveriesTotal)
	return m
}

func (m *BookingMetrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *BookingMetrics) ObserveEvent(event string, applied bool) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(event, strconv.FormatBool(applied)).Inc()
}

func (m *BookingMetrics) BookingCompleted(serviceID string) {
	if m == nil {
		return
	}
	m.bookingsCompleted.WithLabelValues(serviceID).Inc()
}

func (m *BookingMetrics) ObserveAvailability(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.availabilityLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *BookingMetrics) ObserveDelivery(sink string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.deliveriesTotal.WithLabelValues(sink, status).Inc()
}
