package ticketing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalTickets is the total number of ticket channels created.
	TotalTickets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Total number of ticket channels created",
		},
		[]string{"kind"},
	)

	// TotalDeliveries is the total number of asset deliveries by outcome.
	TotalDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_deliveries_total",
			Help: "Total number of asset deliveries",
		},
		[]string{"outcome"},
	)
)
