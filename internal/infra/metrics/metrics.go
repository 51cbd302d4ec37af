// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound updates by kind (message/callback).",
		},
		[]string{"kind"},
	)

	policyDropsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_policy_drops_total",
			Help: "Updates suppressed by an access policy.",
		},
		[]string{"policy"},
	)

	flowEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_flow_events_total",
			Help: "Flow lifecycle events per flow (started/completed/cancelled/rejected).",
		},
		[]string{"flow", "event"},
	)

	backendRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_latency_ms",
			Help:    "Backend call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"op", "status"},
	)

	pollerCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_cycles_total",
			Help: "Reconciliation cycles by outcome (ok/error).",
		},
		[]string{"outcome"},
	)

	pollerNotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_notifications_total",
			Help: "Order status notifications by order status and delivery result.",
		},
		[]string{"status", "result"},
	)
)

func IncUpdate(kind string) { updatesTotal.WithLabelValues(kind).Inc() }

func IncPolicyDrop(policy string) { policyDropsTotal.WithLabelValues(policy).Inc() }

func IncFlowEvent(flow, event string) { flowEventsTotal.WithLabelValues(flow, event).Inc() }

// ObserveBackendRequest records one backend call; status 0 means the request
// never produced a response.
func ObserveBackendRequest(op string, status int, d time.Duration) {
	backendRequestLatency.WithLabelValues(op, strconv.Itoa(status)).Observe(float64(d.Milliseconds()))
}

func IncPollerCycle(outcome string) { pollerCyclesTotal.WithLabelValues(outcome).Inc() }

func IncPollerNotification(status, result string) {
	pollerNotificationsTotal.WithLabelValues(status, result).Inc()
}
