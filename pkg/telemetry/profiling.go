package telemetry

import (
	"fmt"

	"github.com/grafana/pyroscope-go"
)

// ProfilingConfig controls the optional continuous-profiling bootstrap
// used by the demo/smoke binary (SPEC_FULL.md §3b), grounded on the
// teacher's internal/telemetry profiling bootstrap.
type ProfilingConfig struct {
	// Enabled controls whether profiling is started at all.
	Enabled bool

	// ServiceName is the application name reported to the profiling
	// server.
	ServiceName string

	// ServerAddress is the Pyroscope server URL (e.g.
	// "http://localhost:4040").
	ServerAddress string

	// ProfileTypes selects which profiles to collect. Valid values:
	// cpu, alloc_objects, alloc_space, inuse_objects, inuse_space,
	// goroutines.
	ProfileTypes []string
}

var profilingEnabled bool

// InitProfiling starts a Pyroscope profiler per cfg and returns a
// shutdown function. When cfg.Enabled is false, both are no-ops.
func InitProfiling(cfg ProfilingConfig) (shutdown func() error, err error) {
	if !cfg.Enabled {
		profilingEnabled = false
		return func() error { return nil }, nil
	}

	types := make([]pyroscope.ProfileType, 0, len(cfg.ProfileTypes))
	for _, pt := range cfg.ProfileTypes {
		parsed, err := parseProfileType(pt)
		if err != nil {
			return nil, err
		}
		types = append(types, parsed)
	}
	if len(types) == 0 {
		types = []pyroscope.ProfileType{pyroscope.ProfileCPU}
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ServerAddress,
		ProfileTypes:    types,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: start pyroscope profiler: %w", err)
	}
	profilingEnabled = true

	return func() error {
		return profiler.Stop()
	}, nil
}

// IsProfilingEnabled reports whether a profiler was successfully
// started.
func IsProfilingEnabled() bool {
	return profilingEnabled
}

func parseProfileType(pt string) (pyroscope.ProfileType, error) {
	switch pt {
	case "cpu":
		return pyroscope.ProfileCPU, nil
	case "alloc_objects":
		return pyroscope.ProfileAllocObjects, nil
	case "alloc_space":
		return pyroscope.ProfileAllocSpace, nil
	case "inuse_objects":
		return pyroscope.ProfileInuseObjects, nil
	case "inuse_space":
		return pyroscope.ProfileInuseSpace, nil
	case "goroutines":
		return pyroscope.ProfileGoroutines, nil
	default:
		return pyroscope.ProfileCPU, fmt.Errorf("telemetry: unknown profile type %q", pt)
	}
}
