package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	SearchPhaseTotal.WithLabelValues("results-found").Inc()
	if got := testutil.ToFloat64(SearchPhaseTotal.WithLabelValues("results-found")); got < 1 {
		t.Errorf("expected search_phase_total >= 1, got %f", got)
	}
}
