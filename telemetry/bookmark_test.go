package telemetry

import (
	"testing"

	"github.com/pthm-cable/thermocam/config"
)

func testBookmarksConfig() config.BookmarksConfig {
	var cfg config.BookmarksConfig
	cfg.HeatSpike.Delta = 4
	cfg.CoolDown.Delta = 4
	cfg.FlatScene.MaxSpan = 1
	cfg.FlatScene.FlatWindows = 3
	return cfg
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func steadyWindow(end uint64, max float64) WindowStats {
	return WindowStats{
		WindowEndTick: end,
		Frames:        25,
		SceneMin:      20,
		SceneMax:      max,
		DisplayMin:    18,
		DisplayMax:    max,
	}
}

func TestBookmarkDetector_HeatSpike(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	for i := 0; i < 5; i++ {
		if got := bd.Check(steadyWindow(uint64(i*25), 30)); hasBookmark(got, BookmarkHeatSpike) {
			t.Fatalf("window %d: unexpected heat_spike", i)
		}
	}

	got := bd.Check(steadyWindow(125, 36))
	if !hasBookmark(got, BookmarkHeatSpike) {
		t.Error("expected heat_spike bookmark")
	}
}

func TestBookmarkDetector_HeatSpikeNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())
	bd.Check(steadyWindow(25, 22))
	if got := bd.Check(steadyWindow(50, 40)); hasBookmark(got, BookmarkHeatSpike) {
		t.Error("heat_spike fired without enough history")
	}
}

func TestBookmarkDetector_CoolDown(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	bd.Check(steadyWindow(25, 34))
	bd.Check(steadyWindow(50, 33))
	if got := bd.Check(steadyWindow(75, 31)); hasBookmark(got, BookmarkCoolDown) {
		t.Fatal("cool_down fired for a 3°C drop")
	}

	got := bd.Check(steadyWindow(100, 29.5))
	if !hasBookmark(got, BookmarkCoolDown) {
		t.Fatal("expected cool_down bookmark")
	}

	// The peak resets, so continued cooling by less than the threshold is quiet.
	if got := bd.Check(steadyWindow(125, 28)); hasBookmark(got, BookmarkCoolDown) {
		t.Error("cool_down fired again without a new drop")
	}
}

func TestBookmarkDetector_FlatScene(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	flat := WindowStats{Frames: 25, SceneMin: 25, SceneMax: 25, DisplayMin: 25, DisplayMax: 25.5}
	fired := 0
	for i := 0; i < 6; i++ {
		flat.WindowEndTick = uint64((i + 1) * 25)
		if hasBookmark(bd.Check(flat), BookmarkFlatScene) {
			fired++
			if i != 2 {
				t.Errorf("flat_scene fired at window %d, want 2", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("flat_scene fired %d times, want once", fired)
	}

	// A wide window breaks the stretch; three more flat windows fire again.
	bd.Check(steadyWindow(200, 30))
	fired = 0
	for i := 0; i < 3; i++ {
		if hasBookmark(bd.Check(flat), BookmarkFlatScene) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("flat_scene fired %d times after reset, want once", fired)
	}
}

func TestBookmarkDetector_FlatSceneIgnoresWarmUp(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())
	flat := WindowStats{Frames: 25, DisplayMin: 6, DisplayMax: 6, WarmingUp: true}
	for i := 0; i < 5; i++ {
		if hasBookmark(bd.Check(flat), BookmarkFlatScene) {
			t.Fatal("flat_scene fired during warm-up")
		}
	}
}
