package ledger

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TotalOperations is the total number of ledger operations by outcome.
var TotalOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_operations_total",
		Help: "Total number of ledger operations",
	},
	[]string{"operation", "result"},
)

func observe(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidAmount):
		result = "invalid_amount"
	case errors.Is(err, ErrInsufficientBalance):
		result = "insufficient_balance"
	default:
		result = "error"
	}
	TotalOperations.WithLabelValues(operation, result).Inc()
}
