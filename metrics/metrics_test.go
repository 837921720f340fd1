package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilCollectorMethodsAreNoOps(t *testing.T) {
	var c *Collector
	c.ObserveStepDuration("main", time.Second)
	c.IncNumericalError("main")
	c.IncReanchor("main")
	c.SetDriftMagnitude("main", 1.0)
	if c.Registry() != nil {
		t.Error("Registry() on nil Collector should be nil")
	}
}

func TestCollectorRecordsNumericalErrors(t *testing.T) {
	c := New()
	c.IncNumericalError("main")
	c.IncNumericalError("main")
	if got := testutil.ToFloat64(c.numericalError.WithLabelValues("main")); got != 2 {
		t.Errorf("numerical error count = %v, want 2", got)
	}
}

func TestCollectorRecordsDriftMagnitude(t *testing.T) {
	c := New()
	c.SetDriftMagnitude("main", 42.5)
	if got := testutil.ToFloat64(c.driftMagnitude.WithLabelValues("main")); got != 42.5 {
		t.Errorf("drift magnitude = %v, want 42.5", got)
	}
}

func TestTwoCollectorsDoNotCollide(t *testing.T) {
	a := New()
	b := New()
	a.IncNumericalError("main")
	b.IncNumericalError("main")
	if got := testutil.ToFloat64(a.numericalError.WithLabelValues("main")); got != 1 {
		t.Errorf("collector a count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.numericalError.WithLabelValues("main")); got != 1 {
		t.Errorf("collector b count = %v, want 1", got)
	}
}
