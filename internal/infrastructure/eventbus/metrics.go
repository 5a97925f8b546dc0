package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish outcome counters, labeled by transport driver and entity type.
// Fire-and-forget publishing has no caller to report errors to, so the
// counters are the only visibility into delivery health.
var (
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "eventbus",
		Name:      "published_total",
		Help:      "Number of event messages successfully published.",
	}, []string{"driver", "entity"})

	publishFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "eventbus",
		Name:      "publish_failed_total",
		Help:      "Number of event messages that failed to publish.",
	}, []string{"driver", "entity"})
)
