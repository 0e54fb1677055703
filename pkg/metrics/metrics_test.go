package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/gorelay/internal/testutil"
)

func TestBuildDisabled(t *testing.T) {
	reg := Config{Enabled: false}.Build()
	if reg != nil {
		t.Fatal("disabled config must build a nil registry")
	}
}

func TestBuildWithRegistry(t *testing.T) {
	promReg := prometheus.NewRegistry()
	reg := Config{Enabled: true, Registry: promReg}.Build()
	if reg == nil {
		t.Fatal("enabled config must build a registry")
	}

	reg.RelayItemsIn.WithLabelValues("test").Inc()
	testutil.AssertEqual(t, promtest.ToFloat64(reg.RelayItemsIn.WithLabelValues("test")), 1)

	families, err := promReg.Gather()
	testutil.AssertNoError(t, err)
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	testutil.AssertEqual(t, cfg.Enabled, true)
	if cfg.Registry == nil {
		t.Fatal("default config must target the default registerer")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry == nil {
		t.Fatal("package init must create the default registry")
	}
}
