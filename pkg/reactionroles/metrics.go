package reactionroles

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TotalRoleChanges is the total number of reaction role grants and revokes.
var TotalRoleChanges = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reactionroles_changes_total",
		Help: "Total number of reaction role changes",
	},
	[]string{"action", "result"},
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
