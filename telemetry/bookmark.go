package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/thermocam/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHeatSpike BookmarkType = "heat_spike"
	BookmarkCoolDown  BookmarkType = "cool_down"
	BookmarkFlatScene BookmarkType = "flat_scene"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        uint64       `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the scene from window stats.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPeak       float64 // hottest window max since the last cool down
	havePeak         bool
	flatWindowsCount int // consecutive windows with a flat display range
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling mean
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if stats.Frames > 0 {
		if b := bd.checkHeatSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkCoolDown(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkFlatScene(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.Frames > 0 {
		bd.addToHistory(stats)
		if !bd.havePeak || stats.SceneMax > bd.recentPeak {
			bd.recentPeak = stats.SceneMax
			bd.havePeak = true
		}
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkHeatSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || bd.cfg.HeatSpike.Delta <= 0 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.SceneMax
	}
	avgMax := sum / float64(len(history))

	if stats.SceneMax > avgMax+bd.cfg.HeatSpike.Delta {
		return &Bookmark{
			Type:        BookmarkHeatSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Peak %.1f°C is %.1f°C above the rolling mean (%.1f°C)", stats.SceneMax, stats.SceneMax-avgMax, avgMax),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCoolDown(stats WindowStats) *Bookmark {
	if !bd.havePeak || bd.cfg.CoolDown.Delta <= 0 {
		return nil
	}

	drop := bd.recentPeak - stats.SceneMax
	if drop >= bd.cfg.CoolDown.Delta {
		// Reset the peak after triggering
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.SceneMax

		return &Bookmark{
			Type:        BookmarkCoolDown,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Peak fell %.1f°C from %.1f°C to %.1f°C", drop, oldPeak, stats.SceneMax),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkFlatScene(stats WindowStats) *Bookmark {
	if stats.WarmingUp || stats.DisplaySpan() > bd.cfg.FlatScene.MaxSpan {
		bd.flatWindowsCount = 0
		return nil
	}

	bd.flatWindowsCount++
	if bd.flatWindowsCount == bd.cfg.FlatScene.FlatWindows { // trigger once per flat stretch
		return &Bookmark{
			Type:        BookmarkFlatScene,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Display range %.1f..%.1f°C flat for %d windows", stats.DisplayMin, stats.DisplayMax, bd.flatWindowsCount),
		}
	}
	return nil
}
