package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available arenas",
	Long:  `Shows every registered arena variant and the presets that can be applied to it.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No arenas available.")
		return
	}

	fmt.Println("Available arenas:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	presets := make(map[string]config.Preset, len(tanks.Variants))
	for _, v := range tanks.Variants {
		presets[v.ID] = v.Preset
	}

	// Print header
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Preset")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "------")

	for _, g := range games {
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, g.ID, g.Title, presets[g.ID])
	}

	fmt.Println()
	fmt.Printf("Presets: %v\n", config.Presets())
	fmt.Println("Run 'tanks play <id>' to play an arena.")
}
