package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ServicesScheduled  prometheus.Counter
	AssignmentsCreated prometheus.Counter
	StatusUpdates      prometheus.Counter
	OdometerReadings   prometheus.Counter
	PaymentsRecorded   prometheus.Counter
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ServicesScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "services_scheduled_total",
			Help:      "The total number of service schedule calls that succeeded",
		}),
		AssignmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_created_total",
			Help:      "The total number of services formally assigned",
		}),
		StatusUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_updates_total",
			Help:      "The total number of assignment status transitions",
		}),
		OdometerReadings: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "odometer_readings_total",
			Help:      "The total number of odometer readings recorded",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "The total number of payment events written to the ledger",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of request failures",
		}, []string{"operation"}),
	}
}
