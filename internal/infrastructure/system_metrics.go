package infrastructure

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics records Go runtime health gauges for the process. They are
// exported next to the business metrics so a single Prometheus scrape covers
// both the reconciliation pipeline and the process running it.
type RuntimeMetrics struct {
	goRoutines      metric.Int64Gauge
	memoryUsage     metric.Int64Gauge
	memoryAllocated metric.Int64Gauge
	memorySystem    metric.Int64Gauge
	gcCount         metric.Int64Counter
	gcPause         metric.Float64Histogram
	cpuCount        metric.Int64Gauge
	processUptime   metric.Float64Gauge

	lastGCCount uint32
}

// NewRuntimeMetrics registers the runtime instruments on the given meter.
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	goRoutines, err := meter.Int64Gauge(
		"system_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return nil, err
	}

	memoryUsage, err := meter.Int64Gauge(
		"system_memory_usage_bytes",
		metric.WithDescription("Heap memory currently allocated"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	memoryAllocated, err := meter.Int64Gauge(
		"system_memory_allocated_bytes",
		metric.WithDescription("Cumulative bytes allocated by the Go runtime"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	memorySystem, err := meter.Int64Gauge(
		"system_memory_system_bytes",
		metric.WithDescription("Memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Counter(
		"system_gc_count_total",
		metric.WithDescription("Garbage collections observed since start"),
	)
	if err != nil {
		return nil, err
	}

	gcPause, err := meter.Float64Histogram(
		"system_gc_pause_seconds",
		metric.WithDescription("Most recent garbage collection pause"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cpuCount, err := meter.Int64Gauge(
		"system_cpu_count",
		metric.WithDescription("Number of logical CPUs"),
	)
	if err != nil {
		return nil, err
	}

	processUptime, err := meter.Float64Gauge(
		"system_process_uptime_seconds",
		metric.WithDescription("Process uptime"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RuntimeMetrics{
		goRoutines:      goRoutines,
		memoryUsage:     memoryUsage,
		memoryAllocated: memoryAllocated,
		memorySystem:    memorySystem,
		gcCount:         gcCount,
		gcPause:         gcPause,
		cpuCount:        cpuCount,
		processUptime:   processUptime,
	}, nil
}

// Collect samples the runtime and records one observation per instrument.
func (rm *RuntimeMetrics) Collect(ctx context.Context, startTime time.Time) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	rm.goRoutines.Record(ctx, int64(runtime.NumGoroutine()))
	rm.memoryUsage.Record(ctx, int64(memStats.Alloc))
	rm.memoryAllocated.Record(ctx, int64(memStats.TotalAlloc))
	rm.memorySystem.Record(ctx, int64(memStats.Sys))
	rm.cpuCount.Record(ctx, int64(runtime.NumCPU()))
	rm.processUptime.Record(ctx, time.Since(startTime).Seconds())

	// The runtime exposes a cumulative GC count; convert to per-interval
	// deltas so the counter stays monotonic across samples.
	if delta := memStats.NumGC - rm.lastGCCount; delta > 0 {
		rm.gcCount.Add(ctx, int64(delta))
		rm.lastGCCount = memStats.NumGC

		lastPause := time.Duration(memStats.PauseNs[(memStats.NumGC+255)%256])
		if lastPause > 0 {
			rm.gcPause.Record(ctx, lastPause.Seconds())
		}
	}
}

// SystemMetricsCollector samples RuntimeMetrics on a fixed interval in a
// background goroutine.
type SystemMetricsCollector struct {
	metrics   *RuntimeMetrics
	startTime time.Time
	interval  time.Duration
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewSystemMetricsCollector registers the runtime instruments and returns a
// collector that samples them every interval once started.
func NewSystemMetricsCollector(meter metric.Meter, interval time.Duration) (*SystemMetricsCollector, error) {
	metrics, err := NewRuntimeMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create runtime metrics: %w", err)
	}

	return &SystemMetricsCollector{
		metrics:   metrics,
		startTime: time.Now(),
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Start launches the sampling loop. It returns immediately; the loop runs
// until Stop is called or ctx is cancelled.
func (smc *SystemMetricsCollector) Start(ctx context.Context) {
	go func() {
		defer close(smc.doneCh)

		ticker := time.NewTicker(smc.interval)
		defer ticker.Stop()

		smc.metrics.Collect(ctx, smc.startTime)

		for {
			select {
			case <-ticker.C:
				smc.metrics.Collect(ctx, smc.startTime)
			case <-smc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the sampling loop and waits for it to exit. Safe to call
// more than once.
func (smc *SystemMetricsCollector) Stop() {
	smc.stopOnce.Do(func() {
		close(smc.stopCh)
		<-smc.doneCh
	})
}
