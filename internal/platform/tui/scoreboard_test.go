package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for i, winner := range []string{"blue", "red", "blue"} {
		_, err := store.SaveMatch(storage.MatchResult{
			MatchID:   string(rune('a' + i)),
			GameID:    "tanks",
			Preset:    "classic",
			Winner:    winner,
			BlueScore: 100 * (i + 1),
			RedScore:  50,
		})
		if err != nil {
			t.Fatalf("SaveMatch failed: %v", err)
		}
	}
	return store
}

func TestScoreboardToggleMatches(t *testing.T) {
	sb := NewScoreboardModel(seededStore(t), 120, 40)
	if len(sb.scores) != 6 || len(sb.matches) != 3 {
		t.Fatalf("loaded %d scores and %d matches, expected 6 and 3", len(sb.scores), len(sb.matches))
	}
	if !strings.Contains(sb.View(), "HIGH SCORES") {
		t.Error("scoreboard should open on high scores")
	}

	next, _ := sb.Update(runeKey("m"))
	sb = next.(ScoreboardModel)
	if !sb.showMatches || !strings.Contains(sb.View(), "RECENT MATCHES") {
		t.Error("m should switch to recent matches")
	}
	if rows := sb.table.Rows(); len(rows) != 3 || rows[0][0] != "blue" {
		t.Errorf("match rows = %v, expected newest blue win first", rows)
	}
}

func TestMenuShowsWinCounts(t *testing.T) {
	menu := NewMenuModel(seededStore(t), core.RuntimeConfig{ScreenW: 120, ScreenH: 40})
	found := false
	for _, item := range menu.items {
		if item.GameID == "tanks" {
			found = true
			if item.Wins != [2]int{2, 1} {
				t.Errorf("Wins = %v, expected [2 1]", item.Wins)
			}
		}
	}
	if !found {
		t.Fatal("tanks missing from the menu")
	}
}
