package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:     "modes",
	Aliases: []string{"list"},
	Short:   "List all available modes",
	Long:    `Shows every registered game mode.`,
	Run:     runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'dinorun play <id>' to play a mode.")
}
