package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRIC_ERROR_COUNT          = "error_count"
	METRIC_POST_COUNT           = "post_count"
	METRIC_GATE_CHECK_COUNT     = "gate_check_count"
	METRIC_TOKEN_MISMATCH_COUNT = "token_mismatch_count"
)

var (
	counters = map[string]prometheus.Counter{
		METRIC_ERROR_COUNT:          newCounter(METRIC_ERROR_COUNT, "Counts the number of failed operations"),
		METRIC_POST_COUNT:           newCounter(METRIC_POST_COUNT, "Counts the number of posts submitted successfully"),
		METRIC_GATE_CHECK_COUNT:     newCounter(METRIC_GATE_CHECK_COUNT, "Counts the number of balance gate checks"),
		METRIC_TOKEN_MISMATCH_COUNT: newCounter(METRIC_TOKEN_MISMATCH_COUNT, "Counts gate checks where the poster's token differs from the configured one"),
	}

	registerOnce sync.Once
)

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "poster",
		Subsystem: "client",
		Name:      name,
		Help:      help,
	})
}

// Init registers the metrics with the default registry. Counting works without it.
func Init() {
	registerOnce.Do(func() {
		for _, counter := range counters {
			prometheus.MustRegister(counter)
		}
	})
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func IncErrorCount() {
	counters[METRIC_ERROR_COUNT].Inc()
}

func IncPostCount() {
	counters[METRIC_POST_COUNT].Inc()
}

func IncGateCheckCount() {
	counters[METRIC_GATE_CHECK_COUNT].Inc()
}

func IncTokenMismatchCount() {
	counters[METRIC_TOKEN_MISMATCH_COUNT].Inc()
}
