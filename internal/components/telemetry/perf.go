package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const report_perf_stats = "perf-stats"

var meter = otel.Meter("go.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage", metric.WithUnit("%"))
var memoryGauge, _ = meter.Int64Gauge("allocated_mb", metric.WithUnit("MBy"))
var liveObjectsGauge, _ = meter.Int64Gauge("live_objects")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// PerfStats is one reading of the process' resource usage.
type PerfStats struct {
	CPUPercent  float64
	AllocatedMB int64
	LiveObjects int64
	Goroutines  int64
}

// RecordPerfStats takes one reading of the resource usage, records it on the
// perf gauges and reports it through tel.
func RecordPerfStats(ctx context.Context, tel API) PerfStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := PerfStats{
		AllocatedMB: int64(memStats.Alloc / 1_000_000),
		LiveObjects: int64(memStats.Mallocs) - int64(memStats.Frees),
		Goroutines:  int64(runtime.NumGoroutine()),
	}

	cpuUsage, err := cpu.PercentWithContext(ctx, time.Millisecond*200, false)
	if err == nil && len(cpuUsage) > 0 {
		stats.CPUPercent = cpuUsage[0]
		cpuGauge.Record(ctx, stats.CPUPercent)
	} else {
		tel.ReportWarning(report_perf_stats, "failed to read cpu usage", err)
	}

	memoryGauge.Record(ctx, stats.AllocatedMB)
	liveObjectsGauge.Record(ctx, stats.LiveObjects)
	goroutineGauge.Record(ctx, stats.Goroutines)

	tel.ReportDebug(
		report_perf_stats,
		"cpu", stats.CPUPercent,
		"allocated_mb", stats.AllocatedMB,
		"goroutines", stats.Goroutines,
	)
	return stats
}
