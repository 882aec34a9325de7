package app

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/thermocam/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (a *App) flushTelemetry() {
	tick := a.Tick()
	if !a.collector.ShouldFlush(tick) {
		return
	}

	stats := a.collector.Flush(tick, a.last.Display, a.last.WarmingUp)
	perfStats := a.perfCollector.Stats()

	if a.opts.StatsCallback != nil {
		a.opts.StatsCallback(stats)
	}

	if a.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := a.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := a.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range a.bookmarkDetector.Check(stats) {
		a.lastBookmark = &bm
		if a.opts.LogStats {
			bm.LogBookmark()
		}
		if err := a.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if a.opts.SnapshotDir != "" {
			if _, err := a.SaveSnapshot(&bm); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
	}
}

// SaveSnapshot writes the current frame and framebuffer to the snapshot
// directory. bookmark may be nil for on-demand snapshots.
func (a *App) SaveSnapshot(bookmark *telemetry.Bookmark) (string, error) {
	if a.opts.SnapshotDir == "" {
		return "", fmt.Errorf("no snapshot directory configured")
	}
	if a.last.Smoothed == nil {
		return "", fmt.Errorf("no frame captured yet")
	}

	snapshot := telemetry.NewSnapshot(a.last, a.run.ID, a.clock.Now())
	snapshot.Bookmark = bookmark

	path, err := telemetry.SaveSnapshot(snapshot, a.fb, a.cfg.Telemetry.SnapshotScale, a.opts.SnapshotDir)
	if err != nil {
		return "", err
	}
	a.snapshots = append(a.snapshots, path)
	slog.Info("snapshot saved", "path", path, "tick", a.Tick())
	return path, nil
}
