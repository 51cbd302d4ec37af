// File: internal/infra/metrics/register.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var once sync.Once

// Register installs all collectors into the default registry. Safe to call
// more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal,
			policyDropsTotal,
			flowEventsTotal,
			backendRequestLatency,
			pollerCyclesTotal,
			pollerNotificationsTotal,
		)
	})
}
