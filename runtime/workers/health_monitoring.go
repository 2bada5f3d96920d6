package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthMonitoringWorker samples the service's own process at a fixed
// interval: resident memory and CPU usage. Numbers go to the log only, the
// debug inspector picks up the richer counters from observability.Stats.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
}

func NewHealthMonitoringWorker(log *slog.Logger, metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{log: log, metricInterval: metricInterval}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring worker")
			return nil
		case <-ticker.C:
			memory, err := proc.MemoryInfo()
			if err != nil {
				w.log.Debug("Error while reading process memory", "err", err)
				continue
			}
			cpu, err := proc.CPUPercent()
			if err != nil {
				w.log.Debug("Error while reading process cpu", "err", err)
				continue
			}
			w.log.Debug("Process health",
				"rss_mb", memory.RSS/1024/1024,
				"cpu_percent", cpu)
		}
	}
}
